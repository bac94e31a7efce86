// Package cli is the soundctl command tree. It drives the same services as
// the web storefront with a file-backed session.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soundplus/storefront/internal/apiclient"
	"github.com/soundplus/storefront/internal/config"
	"github.com/soundplus/storefront/internal/search"
	"github.com/soundplus/storefront/internal/service"
	"github.com/soundplus/storefront/internal/session"
	"github.com/soundplus/storefront/pkg/logging"
)

var errNotLoggedIn = errors.New("not logged in: run soundctl login first")

type app struct {
	cfg      *config.CLIConfig
	logLevel string
	in       *bufio.Reader
	out      io.Writer

	storage *session.FileStorage
	store   *session.Store

	auth    *service.AuthService
	catalog *service.CatalogService
	orders  *service.OrderService
}

// NewRootCommand builds soundctl. Flags override the values in cfg.
func NewRootCommand(cfg *config.CLIConfig, in io.Reader, out io.Writer) *cobra.Command {
	a := &app{cfg: cfg, in: bufio.NewReader(in), out: out}

	root := &cobra.Command{
		Use:           "soundctl",
		Short:         "Manage the SoundPlus++ storefront from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	root.PersistentFlags().StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "backend base URL")
	root.PersistentFlags().DurationVar(&cfg.APITimeout, "timeout", cfg.APITimeout, "backend request timeout")
	root.PersistentFlags().StringVar(&cfg.SessionFile, "session-file", cfg.SessionFile, "where the login session is kept")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "diagnostic log level")

	root.AddCommand(
		a.loginCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.productsCommand(),
		a.ordersCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	l := logging.NewWithWriter(cmd.ErrOrStderr(), a.logLevel).With("command", cmd.CommandPath())
	cmd.SetContext(logging.IntoContext(cmd.Context(), l))

	client, err := apiclient.NewClient(a.cfg.APIURL, a.cfg.APITimeout)
	if err != nil {
		return err
	}
	a.storage, err = session.OpenFileStorage(a.cfg.SessionFile)
	if err != nil {
		return fmt.Errorf("open session file: %w", err)
	}
	a.store = session.NewStore(a.storage)
	if dropped, err := a.store.DropExpired(); err != nil {
		return err
	} else if dropped {
		l.Info("session_expired", "file", a.storage.Path())
	}

	a.auth = &service.AuthService{API: client}
	a.catalog = &service.CatalogService{API: client, Search: &search.Catalog{Source: client}}
	a.orders = &service.OrderService{API: client}
	return nil
}

func (a *app) session() (*session.Session, error) {
	sess, ok := a.store.Session()
	if !ok {
		return nil, errNotLoggedIn
	}
	return sess, nil
}

// rejected drops the stored session when the backend no longer accepts
// the token.
func (a *app) rejected(l *slog.Logger, err error) error {
	if apiclient.StatusOf(err) != http.StatusUnauthorized {
		return err
	}
	if lerr := a.store.Logout(); lerr != nil {
		l.Warn("logout_error", "error", lerr)
	}
	return fmt.Errorf("session expired, log in again: %w", err)
}

func (a *app) prompt(question string) (string, error) {
	fmt.Fprint(a.out, question)
	line, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
