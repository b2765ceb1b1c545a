package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"eduportal-backend/internal/domain"

	"github.com/spf13/cobra"
)

func newUserCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage portal accounts",
	}

	cmd.AddCommand(
		newUserCreateCmd(st),
		newUserListCmd(st),
		newUserAccessCmd(st),
	)
	return cmd
}

func newUserCreateCmd(st *state) *cobra.Command {
	var email, name, role, password, avatar string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account with any role",
		RunE: st.run(func(cmd *cobra.Command, args []string) error {
			user := &domain.User{
				Email:  email,
				Name:   name,
				Role:   domain.Role(role),
				Avatar: avatar,
			}
			if err := st.portal.Users.CreateUser(cmd.Context(), user, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s) with id %s\n", user.Email, user.Role, user.ID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleStudent), "admin, director, teacher or student")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringVar(&avatar, "avatar", "", "avatar emoji")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newUserListCmd(st *state) *cobra.Command {
	var studentsOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts in creation order",
		RunE: st.run(func(cmd *cobra.Command, args []string) error {
			var (
				users []domain.User
				err   error
			)
			if studentsOnly {
				users, err = st.portal.Users.GetStudents(cmd.Context())
			} else {
				users, err = st.portal.Users.GetAllUsers(cmd.Context())
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tVIEWS")
			for i := range users {
				u := &users[i]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Name, u.Role, joinViews(domain.AllowedViews(u)))
			}
			return w.Flush()
		}),
	}

	cmd.Flags().BoolVar(&studentsOnly, "students", false, "only list students")
	return cmd
}

func newUserAccessCmd(st *state) *cobra.Command {
	var role string
	var views []string
	var reset bool

	cmd := &cobra.Command{
		Use:   "access <email>",
		Short: "Change an account's role or view overrides",
		Args:  cobra.ExactArgs(1),
		RunE: st.run(func(cmd *cobra.Command, args []string) error {
			target, err := findByEmail(cmd, st, args[0])
			if err != nil {
				return err
			}

			var patch domain.AccessPatch
			if cmd.Flags().Changed("role") {
				r := domain.Role(role)
				patch.Role = &r
			}
			if reset || cmd.Flags().Changed("views") {
				ids := make([]domain.ViewID, 0, len(views))
				for _, v := range views {
					ids = append(ids, domain.ViewID(v))
				}
				if reset {
					ids = nil
				}
				patch.Views = &ids
			}

			user, err := st.portal.Users.UpdateAccess(cmd.Context(), target.ID, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s with views: %s\n", user.Email, user.Role, joinViews(domain.AllowedViews(user)))
			return nil
		}),
	}

	cmd.Flags().StringVar(&role, "role", "", "new role")
	cmd.Flags().StringSliceVar(&views, "views", nil, "comma separated view override")
	cmd.Flags().BoolVar(&reset, "reset-views", false, "drop the override and use the role's views")
	return cmd
}

func findByEmail(cmd *cobra.Command, st *state, email string) (*domain.User, error) {
	users, err := st.portal.Users.GetAllUsers(cmd.Context())
	if err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func joinViews(views []domain.ViewID) string {
	parts := make([]string, len(views))
	for i, v := range views {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}
