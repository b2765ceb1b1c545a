package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo accounts, courses and news into an empty store",
		RunE: st.run(func(cmd *cobra.Command, args []string) error {
			if err := st.portal.Seed.SeedInitialData(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Seed complete.")
			return nil
		}),
	}
}
