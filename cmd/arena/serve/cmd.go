package serve

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/contestarena/arena/auth"
	authapi "github.com/contestarena/arena/auth/api"
	"github.com/contestarena/arena/contest"
	contestapi "github.com/contestarena/arena/contest/api"
	"github.com/contestarena/arena/directory"
	"github.com/contestarena/arena/internal/cmdflags"
	"github.com/contestarena/arena/internal/httpserver"
	"github.com/contestarena/arena/internal/logutil"
	"github.com/contestarena/arena/internal/sqliteutil"
	"github.com/julienschmidt/httprouter"
	"github.com/urfave/cli/v2"
)

const (
	sessionCookieName = "arena_session"
)

func Cmd() *cli.Command {
	bindAddr := "localhost:7000"
	dbPath := "arena.db"
	sessionTTL := 24 * time.Hour
	secureCookies := false
	seed := false
	var secretEnvVar string
	var adminPasswordEnvVar string
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the arena HTTP server",
		Flags: []cli.Flag{
			cmdflags.Bind(&bindAddr),
			cmdflags.Database(&dbPath),
			&cli.DurationFlag{
				Name:        "session-ttl",
				Usage:       "How long a session stays valid after login (no sliding renewal)",
				Value:       sessionTTL,
				Destination: &sessionTTL,
			},
			&cli.BoolFlag{
				Name:        "secure-cookies",
				Usage:       "Mark the session cookie as Secure (enable whenever TLS terminates in front of the server)",
				Value:       secureCookies,
				Destination: &secureCookies,
			},
			&cli.BoolFlag{
				Name:        "seed",
				Usage:       "Install default tracks and a sample competition when the catalog is empty",
				Value:       seed,
				Destination: &seed,
			},
			cmdflags.SecretEnvVar("session-secret-envvar-name",
				"Name of the environment variable holding the cookie signing secret. The secret itself must not be passed as an argument",
				"ARENA_SESSION_SECRET", &secretEnvVar),
			cmdflags.SecretEnvVar("admin-password-envvar-name",
				"Name of the environment variable holding the bootstrap admin password. When set, an admin account is created on startup if missing",
				"ARENA_ADMIN_PASSWORD", &adminPasswordEnvVar),
		},
		Action: func(ctx *cli.Context) error {
			log := logutil.GetOrDefault(ctx.Context)

			secret := []byte(cmdflags.ReadSecret(secretEnvVar, nil, nil))
			if len(secret) == 0 {
				// Sessions live in memory anyway, so a per-process
				// random secret only costs re-login on restart.
				secret = make([]byte, 32)
				if _, err := rand.Read(secret); err != nil {
					return fmt.Errorf("unable to generate session secret, cause %w", err)
				}
				log.Warn().Str("envvar", secretEnvVar).Msg("Session secret not set, using a random per-process secret")
			}

			db, err := sqliteutil.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			dir, err := directory.NewSQLite(ctx.Context, db)
			if err != nil {
				return err
			}
			store, err := contest.NewStore(ctx.Context, db)
			if err != nil {
				return err
			}
			sessions, err := auth.InMemorySessionStore(sessionTTL)
			if err != nil {
				return err
			}
			svc, err := auth.NewService(dir, sessions)
			if err != nil {
				return err
			}

			if seed {
				if err := contest.EnsureDefaults(ctx.Context, store); err != nil {
					return err
				}
			}
			if password := cmdflags.ReadSecret(adminPasswordEnvVar, nil, nil); password != "" {
				if err := bootstrapAdmin(ctx.Context, dir, password); err != nil {
					return err
				}
			}

			cookies := authapi.NewCookieCodec(sessionCookieName, secret, secureCookies, sessionTTL)
			realm := authapi.NewRealm(svc, cookies)
			router := httprouter.New()
			authapi.Routes(router, svc, cookies)
			contestapi.Routes(router, store, realm)
			return httpserver.Serve(ctx.Context, bindAddr, realm.Identify(router))
		},
	}
}

// bootstrapAdmin creates the admin account on first start. An existing
// admin is left untouched, password change included.
func bootstrapAdmin(ctx context.Context, dir directory.Directory, password string) error {
	_, err := dir.ByUsername(ctx, "admin")
	if err == nil {
		return nil
	} else if !errors.Is(err, directory.ErrNotFound) {
		return err
	}
	digest, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = dir.Create(ctx, directory.Account{
		Username: "admin",
		Digest:   digest,
		Role:     directory.RoleAdmin,
	})
	if errors.Is(err, directory.ErrDuplicateUsername) {
		// Lost a race against another instance, the account exists.
		return nil
	} else if err != nil {
		return err
	}
	log := logutil.GetOrDefault(ctx)
	log.Info().Msg("Bootstrapped admin account")
	return nil
}
