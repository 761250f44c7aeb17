package cli

type ProfileCmd struct {
	Show ProfileShowCmd `cmd:"" help:"Show your mission and vision." default:"1"`
	Set  ProfileSetCmd  `cmd:"" help:"Update your mission or vision."`
}

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *Context) error {
	p, err := ctx.Tracker.Profile(ctx.User)
	if err != nil {
		return err
	}
	if p.Mission == "" && p.Vision == "" {
		ctx.Println("No profile yet. Use 'alpha profile set --mission ... --vision ...'.")
		return nil
	}
	ctx.Printf("Mission: %s\n", orDash(p.Mission))
	ctx.Printf("Vision:  %s\n", orDash(p.Vision))
	return nil
}

type ProfileSetCmd struct {
	Mission *string `help:"Mission statement."`
	Vision  *string `help:"Vision statement."`
}

func (c *ProfileSetCmd) Run(ctx *Context) error {
	if c.Mission == nil && c.Vision == nil {
		ctx.Println("No changes specified. Use --mission or --vision.")
		return nil
	}
	if _, err := ctx.Tracker.SetProfile(ctx.User, c.Mission, c.Vision); err != nil {
		return err
	}
	ctx.Println("Profile updated.")
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
