package catalog

import "sort"

// Pure view-model selectors over fetched collections. Views recompute these
// on every render instead of caching derived state.

func CoursesByUniversity(courses []Course, universityID int) []Course {
	out := make([]Course, 0, len(courses))
	for _, c := range courses {
		if c.UniversityID == universityID {
			out = append(out, c)
		}
	}
	return out
}

func StudentsByUniversity(students []Student, universityID int) []Student {
	out := make([]Student, 0, len(students))
	for _, s := range students {
		if s.UniversityID == universityID {
			out = append(out, s)
		}
	}
	return out
}

func EnrollmentsByStudent(enrollments []Enrollment, studentID int) []Enrollment {
	out := make([]Enrollment, 0, len(enrollments))
	for _, e := range enrollments {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out
}

// EnrolledCourses joins the student's enrollments to the course records.
// Enrollments pointing at unknown courses are skipped.
func EnrolledCourses(enrollments []Enrollment, courses []Course, studentID int) []Course {
	byID := make(map[int]Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}
	out := make([]Course, 0, len(enrollments))
	for _, e := range EnrollmentsByStudent(enrollments, studentID) {
		if c, ok := byID[e.CourseID]; ok {
			out = append(out, c)
		}
	}
	return out
}

// AvailableCourses returns the university's courses the student has not
// enrolled in yet.
func AvailableCourses(courses []Course, enrollments []Enrollment, universityID, studentID int) []Course {
	enrolled := make(map[int]bool)
	for _, e := range EnrollmentsByStudent(enrollments, studentID) {
		enrolled[e.CourseID] = true
	}
	out := make([]Course, 0, len(courses))
	for _, c := range CoursesByUniversity(courses, universityID) {
		if !enrolled[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

type GradeEntry struct {
	Course Course           `json:"course"`
	Status EnrollmentStatus `json:"status"`
	Grade  string           `json:"grade,omitempty"`
}

func Grades(enrollments []Enrollment, courses []Course, studentID int) []GradeEntry {
	byID := make(map[int]Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}
	out := make([]GradeEntry, 0, len(enrollments))
	for _, e := range EnrollmentsByStudent(enrollments, studentID) {
		if c, ok := byID[e.CourseID]; ok {
			out = append(out, GradeEntry{Course: c, Status: e.Status, Grade: e.Grade})
		}
	}
	return out
}

// SortedTopics returns a copy of topics ordered by their sort position.
func SortedTopics(topics []CourseTopic) []CourseTopic {
	out := make([]CourseTopic, len(topics))
	copy(out, topics)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

// NextSortOrder returns the position for the next new topic: one greater than
// the maximum remaining sort order, starting at 1 for an empty list.
func NextSortOrder(topics []CourseTopic) int {
	max := 0
	for _, t := range topics {
		if t.SortOrder > max {
			max = t.SortOrder
		}
	}
	return max + 1
}

type OverviewStats struct {
	Universities       int `json:"universities"`
	ActiveUniversities int `json:"active_universities"`
	Admins             int `json:"admins"`
	Students           int `json:"students"`
	Courses            int `json:"courses"`
}

func Overview(unis []University, admins []Admin, students []Student, courses []Course) OverviewStats {
	stats := OverviewStats{
		Universities: len(unis),
		Admins:       len(admins),
		Students:     len(students),
		Courses:      len(courses),
	}
	for _, u := range unis {
		if u.Status == StatusActive {
			stats.ActiveUniversities++
		}
	}
	return stats
}
