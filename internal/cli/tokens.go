package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/photogrid/pkg/gallery"
)

// tokensCommand creates the tokens command with subcommands.
func (c *CLI) tokensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tokens",
		Aliases: []string{"token"},
		Short:   "Redeem and manage access codes",
		Long: `Redeem and manage access codes.

The gallery grants access per tag. Redeeming a code adds its token to the
token cookie, which is saved per server under ~/.config/photogrid/sessions/
and sent with every request.`,
	}

	cmd.AddCommand(c.tokensRedeemCommand())
	cmd.AddCommand(c.tokensListCommand())
	cmd.AddCommand(c.tokensCreateCommand())
	cmd.AddCommand(c.tokensDeleteCommand())
	cmd.AddCommand(c.tokensLogoutCommand())
	cmd.AddCommand(c.tokensSessionsCommand())

	return cmd
}

func (c *CLI) tokensRedeemCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "redeem CODE",
		Short: "Redeem an access code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cl, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer cl.Close()

			before := cl.Jar().Len()
			jar, err := cl.Redeem(ctx, args[0])
			if err != nil {
				return err
			}
			if err := cl.saveJar(ctx); err != nil {
				return fmt.Errorf("save session: %w", err)
			}
			if n, err := cl.store.Prune(ctx); err != nil {
				c.Logger.Debug("prune sessions", "error", err)
			} else if n > 0 {
				c.Logger.Debug("pruned expired sessions", "n", n)
			}
			printSuccess("Redeemed %s", gallery.RedactCode(args[0]))
			if jar.Len() == before {
				printDetail("the token was already in the cookie")
			}
			printKeyValue("Tokens", strconv.Itoa(jar.Len()))
			printFile(cl.store.Path(cl.server))
			return nil
		},
	}
}

func (c *CLI) tokensListCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tags you can see and their access codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cl, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer cl.Close()

			tags, err := cl.Tags(ctx, true)
			if err != nil {
				return reauthHint(err)
			}
			if asJSON {
				return writeJSON(tags)
			}
			if len(tags) == 0 {
				printInfo("No tags visible with the current tokens")
				return nil
			}

			var rows [][]string
			for _, t := range tags {
				rows = append(rows, []string{strconv.FormatInt(t.ID, 10), t.Tag, t.Level.String(), strconv.Itoa(t.Pictures), "", "", ""})
				for _, tok := range t.Tokens {
					uses := strconv.Itoa(tok.Uses)
					if tok.MaxUses > 0 {
						uses += "/" + strconv.Itoa(tok.MaxUses)
					}
					exp := string(tok.Expires)
					if exp == "" {
						exp = "never"
					}
					rows = append(rows, []string{"", "", tok.Kind(), "", gallery.RedactCode(string(tok.Code)), uses, exp})
				}
			}
			printTable([]string{"ID", "Tag", "Access", "Pictures", "Code", "Uses", "Expires"}, rows)
			if gallery.CanWrite(tags) {
				printDetail("you can edit pictures on this server")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print tags as JSON")
	return cmd
}

func (c *CLI) tokensCreateCommand() *cobra.Command {
	var (
		tag     int64
		level   string
		uses    int
		expires string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an access code for a tag",
		Example: `  photogrid tokens create --tag 12 --level read --expires 2w
  photogrid tokens create --tag 12 --level write --uses 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := parseLevel(level)
			if err != nil {
				return err
			}
			nt := gallery.NewToken{Tag: tag, Level: lvl, Uses: uses}
			if expires != "" {
				if nt.Expires, err = parseExpiry(time.Now(), expires); err != nil {
					return err
				}
			}
			if err := nt.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			cl, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer cl.Close()

			if err := cl.CreateToken(ctx, nt); err != nil {
				return reauthHint(err)
			}
			printSuccess("Created a %s code for tag %d", lvl, tag)
			printNextStep("See it", appName+" tokens list")
			return nil
		},
	}
	f := cmd.Flags()
	f.Int64Var(&tag, "tag", 0, "tag id the code grants access to")
	f.StringVar(&level, "level", "read", "access level: read, download or write")
	f.IntVar(&uses, "uses", 0, "maximum redemptions (0 = unlimited)")
	f.StringVar(&expires, "expires", "", "lifetime such as 3d, 2w, 6m or 1y (default: never)")
	_ = cmd.MarkFlagRequired("tag")
	return cmd
}

func (c *CLI) tokensDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete CODE",
		Short: "Revoke an access code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cl, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer cl.Close()

			if err := cl.DeleteToken(ctx, args[0]); err != nil {
				return reauthHint(err)
			}
			printSuccess("Revoked %s", gallery.RedactCode(args[0]))
			return nil
		},
	}
}

func (c *CLI) tokensLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget every token for the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cl, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer cl.Close()

			n := cl.Jar().Len()
			cl.Logout(ctx)
			if err := cl.saveJar(ctx); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
			printSuccess("Logged out (%d tokens forgotten)", n)
			return nil
		},
	}
}

func (c *CLI) tokensSessionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List the servers with saved tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.sessionStore()
			if err != nil {
				return err
			}
			list, err := store.Sessions(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				printInfo("No saved sessions")
				return nil
			}
			rows := make([][]string, 0, len(list))
			for _, s := range list {
				rows = append(rows, []string{
					s.Server,
					strconv.Itoa(s.Jar().Len()),
					s.ExpiresAt.Local().Format("2006-01-02"),
				})
			}
			printTable([]string{"Server", "Tokens", "Expires"}, rows)
			return nil
		},
	}
}

// parseLevel accepts a level name or number.
func parseLevel(s string) (gallery.Level, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return gallery.Level(n), nil
	}
	for l := gallery.LevelNone; l <= gallery.LevelManage; l++ {
		if strings.EqualFold(l.String(), s) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown access level %q (want read, download or write)", s)
}

var expiryRe = regexp.MustCompile(`^(\d+)([dwmy])$`)

// parseExpiry turns "2w" into a time two weeks after now.
func parseExpiry(now time.Time, s string) (time.Time, error) {
	m := expiryRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return time.Time{}, fmt.Errorf("bad expiry %q (want a number and d, w, m or y, e.g. 2w)", s)
	}
	n, _ := strconv.Atoi(m[1])
	return gallery.ExpiryFrom(now, n, m[2])
}
