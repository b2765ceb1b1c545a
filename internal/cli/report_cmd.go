package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"eduportal-backend/internal/domain"

	"github.com/spf13/cobra"
)

func newSubmissionsCmd(st *state) *cobra.Command {
	var status, courseID string

	cmd := &cobra.Command{
		Use:   "submissions",
		Short: "List student submissions, newest first",
		RunE: st.run(func(cmd *cobra.Command, args []string) error {
			filter := domain.SubmissionFilter{
				Status:   domain.SubmissionStatus(status),
				CourseID: courseID,
			}
			switch filter.Status {
			case domain.SubmissionsAll, domain.SubmissionsPending, domain.SubmissionsGraded:
			default:
				return fmt.Errorf("unknown status %q (want all, pending or graded)", status)
			}

			subs, err := st.portal.Submission.GetAllSubmissions(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if len(subs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No submissions.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SUBMITTED\tSTUDENT\tCOURSE\tLESSON\tFILE\tGRADE")
			for _, s := range subs {
				grade := "pending"
				if s.Grade != nil {
					grade = fmt.Sprintf("%d", *s.Grade)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					s.SubmittedAt.Format("2006-01-02 15:04"), s.StudentName, s.CourseTitle, s.LessonTitle, s.File, grade)
			}
			return w.Flush()
		}),
	}

	cmd.Flags().StringVar(&status, "status", string(domain.SubmissionsAll), "all, pending or graded")
	cmd.Flags().StringVar(&courseID, "course", "", "only this course id")
	return cmd
}

func newAnalyticsCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Print portal-wide totals",
		RunE: st.run(func(cmd *cobra.Command, args []string) error {
			data, err := st.portal.Dashboard.GetAnalytics(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Courses\t%d\n", data.TotalCourses)
			fmt.Fprintf(w, "Students\t%d\n", data.TotalStudents)
			fmt.Fprintf(w, "Enrollments\t%d\n", data.TotalEnrollments)
			fmt.Fprintf(w, "Lessons\t%d\n", data.TotalLessons)
			fmt.Fprintf(w, "Submissions\t%d (%d pending, %d graded)\n", data.TotalSubmissions, data.PendingSubmissions, data.GradedSubmissions)
			fmt.Fprintf(w, "Average grade\t%s\n", optional(data.AverageGrade, ""))
			fmt.Fprintf(w, "Pass rate\t%s\n", optional(data.PassRate, "%"))

			categories := make([]string, 0, len(data.CoursesByCategory))
			for c := range data.CoursesByCategory {
				categories = append(categories, c)
			}
			sort.Strings(categories)
			for _, c := range categories {
				fmt.Fprintf(w, "  %s\t%d\n", c, data.CoursesByCategory[c])
			}
			return w.Flush()
		}),
	}
}

func optional(v *int, suffix string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d%s", *v, suffix)
}
