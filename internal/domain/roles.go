package domain

// ViewID names a screen of the portal. Access to each screen is governed by
// the role's view list, optionally overridden per user.
type ViewID string

const (
	ViewDashboard      ViewID = "dashboard"
	ViewManageCourses  ViewID = "manage-courses"
	ViewEditCourse     ViewID = "edit-course"
	ViewManageStudents ViewID = "manage-students"
	ViewSubmissions    ViewID = "submissions"
	ViewManageNews     ViewID = "manage-news"
	ViewAnalytics      ViewID = "analytics"
	ViewCourses        ViewID = "courses"
	ViewMyCourses      ViewID = "my-courses"
	ViewCourseDetail   ViewID = "course-detail"
	ViewProgress       ViewID = "progress"
	ViewNews           ViewID = "news"
)

var AllViews = []ViewID{
	ViewDashboard,
	ViewManageCourses,
	ViewEditCourse,
	ViewManageStudents,
	ViewSubmissions,
	ViewManageNews,
	ViewAnalytics,
	ViewCourses,
	ViewMyCourses,
	ViewCourseDetail,
	ViewProgress,
	ViewNews,
}

var RoleViews = map[Role][]ViewID{
	RoleAdmin: {
		ViewDashboard,
		ViewManageCourses,
		ViewEditCourse,
		ViewManageStudents,
		ViewSubmissions,
		ViewManageNews,
		ViewAnalytics,
	},
	RoleDirector: {ViewDashboard, ViewManageStudents, ViewManageNews, ViewAnalytics},
	RoleTeacher:  {ViewDashboard, ViewManageCourses, ViewEditCourse, ViewSubmissions, ViewManageNews},
	RoleStudent:  {ViewDashboard, ViewCourses, ViewMyCourses, ViewCourseDetail, ViewProgress, ViewNews},
}

var RoleLabels = map[Role]string{
	RoleAdmin:    "Administrador total",
	RoleDirector: "Director",
	RoleTeacher:  "Docente",
	RoleStudent:  "Alumno",
}

func (v ViewID) Valid() bool {
	for _, known := range AllViews {
		if v == known {
			return true
		}
	}
	return false
}

// AllowedViews returns the per-user override when present, the role's list
// otherwise. Unknown roles and a nil user fall back to the student list.
func AllowedViews(u *User) []ViewID {
	if u == nil {
		return RoleViews[RoleStudent]
	}
	if u.Permissions != nil && len(u.Permissions.Views) > 0 {
		return u.Permissions.Views
	}
	if views, ok := RoleViews[u.Role]; ok {
		return views
	}
	return RoleViews[RoleStudent]
}

func CanAccess(u *User, view ViewID) bool {
	for _, v := range AllowedViews(u) {
		if v == view {
			return true
		}
	}
	return false
}
