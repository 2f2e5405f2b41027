package accounts

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/contestarena/arena/auth"
	"github.com/contestarena/arena/directory"
	"github.com/contestarena/arena/internal/cmdflags"
	"github.com/contestarena/arena/internal/sqliteutil"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	dbPath := "arena.db"
	return &cli.Command{
		Name:  "accounts",
		Usage: "Manage platform accounts directly against the database",
		Flags: []cli.Flag{
			cmdflags.Database(&dbPath),
		},
		Subcommands: []*cli.Command{
			createCmd(&dbPath),
		},
	}
}

func createCmd(dbPath *string) *cli.Command {
	var username string
	var role string
	var university string
	var email string
	return &cli.Command{
		Name:  "create",
		Usage: "Create an account (password is read from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "username",
				Aliases:     []string{"u", "user"},
				Usage:       "Name of the account to create",
				Destination: &username,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "role",
				Usage:       "Role of the account (student or admin)",
				Value:       string(directory.RoleStudent),
				Destination: &role,
			},
			&cli.StringFlag{
				Name:        "university",
				Usage:       "University the account belongs to",
				Destination: &university,
			},
			&cli.StringFlag{
				Name:        "email",
				Usage:       "Contact email for the account",
				Destination: &email,
			},
		},
		Action: func(ctx *cli.Context) error {
			switch directory.Role(role) {
			case directory.RoleStudent, directory.RoleAdmin:
			default:
				return fmt.Errorf("invalid role %v, expecting student or admin", role)
			}
			sc := bufio.NewScanner(os.Stdin)
			if !sc.Scan() {
				return sc.Err()
			}
			password := strings.TrimSpace(sc.Text())
			if len(password) == 0 {
				return errors.New("missing password from stdin")
			}
			db, err := sqliteutil.Open(*dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			dir, err := directory.NewSQLite(ctx.Context, db)
			if err != nil {
				return err
			}
			digest, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			acct, err := dir.Create(ctx.Context, directory.Account{
				Username:   username,
				Digest:     digest,
				Role:       directory.Role(role),
				University: university,
				Email:      email,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created account %v (id %v, role %v)\n", acct.Username, acct.ID, acct.Role)
			return nil
		},
	}
}
