package cli

import (
	"context"

	"eduportal-backend/config"
	"eduportal-backend/internal/app"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// state is shared by every subcommand. The portal is only open while a
// command runs.
type state struct {
	v       *viper.Viper
	verbose bool
	portal  *app.App
}

// NewRootCmd creates the top-level "eduportalctl" command. The store is
// selected with the same environment variables the server reads; --store and
// --bolt-path override them.
func NewRootCmd() *cobra.Command {
	st := &state{v: config.New()}

	root := &cobra.Command{
		Use:          "eduportalctl",
		Short:        "Administer an EduPortal store",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.String("store", config.DriverBolt, "store driver: bolt, mongo or postgres")
	flags.String("bolt-path", "data/eduportal.db", "bbolt database file")
	flags.BoolVarP(&st.verbose, "verbose", "v", false, "log store activity")
	bindFlags(st.v, flags)

	root.AddCommand(
		newSeedCmd(st),
		newUserCmd(st),
		newSubmissionsCmd(st),
		newAnalyticsCmd(st),
	)
	return root
}

// bindFlags lets explicitly set flags win over the environment.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	_ = v.BindPFlag("store_driver", flags.Lookup("store"))
	_ = v.BindPFlag("bolt_path", flags.Lookup("bolt-path"))
}

// run opens the portal for the duration of fn.
func (s *state) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if err := s.open(cmd.Context()); err != nil {
			return err
		}
		defer func() {
			if cerr := s.close(); err == nil {
				err = cerr
			}
		}()
		return fn(cmd, args)
	}
}

func (s *state) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(s.v)
	if err != nil {
		return err
	}

	log := zap.NewNop()
	if s.verbose {
		if log, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}

	portal, err := app.New(ctx, cfg, log)
	if err != nil {
		return errors.Wrapf(err, "opening %s store", cfg.StoreDriver)
	}
	s.portal = portal
	return nil
}

func (s *state) close() error {
	if s.portal == nil {
		return nil
	}
	err := s.portal.Close()
	s.portal = nil
	return err
}
