package models

import (
	"fmt"
	"strings"
)

// Domain is one of the fixed life areas used to tag habits and score categories
type Domain string

const (
	DomainMind          Domain = "mind"
	DomainBody          Domain = "body"
	DomainPurpose       Domain = "purpose"
	DomainRelationships Domain = "relationships"
)

// Domains lists every domain in canonical order. Aggregations iterate in this order,
// so ties are always resolved toward the earlier entry.
var Domains = []Domain{DomainMind, DomainBody, DomainPurpose, DomainRelationships}

func (d Domain) IsValid() bool {
	switch d {
	case DomainMind, DomainBody, DomainPurpose, DomainRelationships:
		return true
	default:
		return false
	}
}

// Label returns a display name for the domain
func (d Domain) Label() string {
	switch d {
	case DomainMind:
		return "Mind"
	case DomainBody:
		return "Body"
	case DomainPurpose:
		return "Purpose"
	case DomainRelationships:
		return "Relationships"
	default:
		return string(d)
	}
}

func ParseDomain(input string) (Domain, error) {
	d := Domain(strings.TrimSpace(strings.ToLower(input)))
	if !d.IsValid() {
		return "", fmt.Errorf("invalid domain: %q (expected one of mind, body, purpose, relationships)", input)
	}
	return d, nil
}
