package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/naatacademy/naat-api/internal/auth"
	"github.com/naatacademy/naat-api/internal/config"
)

// AdminTokenCommand prints a fresh admin token and the hash to configure.
type AdminTokenCommand struct {
	Cost int

	out io.Writer
}

func NewAdminTokenCommand() *AdminTokenCommand {
	return &AdminTokenCommand{out: os.Stdout}
}

func (cmd *AdminTokenCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("admin-token", flag.ExitOnError)

	fs.IntVar(&cmd.Cost, "cost", config.NewConfig().Auth.BcryptCost, "bcrypt cost of the generated hash (ADMIN_BCRYPT_COST)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s admin-token [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Generate an admin token. Set ADMIN_TOKEN_HASH to the printed hash\n")
		fmt.Fprintf(os.Stderr, "and give the token to the admin panel.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Cost < bcrypt.MinCost || cmd.Cost > bcrypt.MaxCost {
		return fmt.Errorf("cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

func (cmd *AdminTokenCommand) Run() error {
	token, hash, err := auth.GenerateAdminToken(cmd.Cost)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Fprintf(cmd.out, "Admin token (shown once):\n  %s\n\n", token)
	fmt.Fprintf(cmd.out, "Add to the environment:\n  ADMIN_TOKEN_HASH='%s'\n", hash)
	return nil
}
