package catalog

import "github.com/trezcool/lideo/core"

// NewUniversity contains information needed to register a new University.
type NewUniversity struct {
	Name      string `json:"uniName" validate:"required"`
	Address   string `json:"address" validate:"required"`
	EstYear   string `json:"estYear" validate:"required,numeric"`
	AdminName string `json:"adminName"`
	Status    Status `json:"status" validate:"omitempty,entitystatus"`
}

func (nu *NewUniversity) Validate() error {
	nu.Name = core.CleanString(nu.Name)
	nu.Address = core.CleanString(nu.Address)
	nu.AdminName = core.CleanString(nu.AdminName)
	if nu.Status == "" {
		nu.Status = StatusActive
	}
	return core.Validate.Struct(nu)
}

// UpdateUniversity defines what may be provided to modify an existing University.
type UpdateUniversity struct {
	Name      string `json:"uniName" validate:"omitempty"`
	Address   string `json:"address" validate:"omitempty"`
	EstYear   string `json:"estYear" validate:"omitempty,numeric"`
	AdminName string `json:"adminName"`
	Status    Status `json:"status" validate:"omitempty,entitystatus"`
}

func (uu *UpdateUniversity) Validate() error {
	uu.Name = core.CleanString(uu.Name)
	uu.Address = core.CleanString(uu.Address)
	uu.AdminName = core.CleanString(uu.AdminName)
	return core.Validate.Struct(uu)
}

type NewCourse struct {
	Name         string `json:"courseName" validate:"required"`
	Code         string `json:"courseCode" validate:"omitempty,alphanum_"`
	Description  string `json:"description"`
	Credits      int    `json:"credits" validate:"required,gt=0"`
	Instructor   string `json:"instructor" validate:"required"`
	Capacity     int    `json:"capacity" validate:"gte=0"`
	UniversityID int    `json:"universityId" validate:"required,gt=0"`
	Status       Status `json:"status" validate:"omitempty,entitystatus"`
}

func (nc *NewCourse) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	nc.Code = core.CleanString(nc.Code, true /* lower */)
	nc.Instructor = core.CleanString(nc.Instructor)
	if nc.Status == "" {
		nc.Status = StatusActive
	}
	return core.Validate.Struct(nc)
}

type UpdateCourse struct {
	Name        string `json:"courseName" validate:"omitempty"`
	Description string `json:"description"`
	Credits     int    `json:"credits" validate:"omitempty,gt=0"`
	Instructor  string `json:"instructor"`
	Capacity    int    `json:"capacity" validate:"gte=0"`
	Status      Status `json:"status" validate:"omitempty,entitystatus"`
}

func (uc *UpdateCourse) Validate() error {
	uc.Name = core.CleanString(uc.Name)
	uc.Instructor = core.CleanString(uc.Instructor)
	return core.Validate.Struct(uc)
}

type NewStudent struct {
	StudentID    string `json:"studentId"`
	FullName     string `json:"fullName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Major        string `json:"major"`
	Year         string `json:"year" validate:"omitempty,numeric"`
	PhoneNumber  string `json:"phoneNumber"`
	UniversityID int    `json:"universityId" validate:"required,gt=0"`
}

func (ns *NewStudent) Validate() error {
	ns.FullName = core.CleanString(ns.FullName)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	return core.Validate.Struct(ns)
}

type UpdateStudent struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email" validate:"omitempty,email"`
	Major       string `json:"major"`
	Year        string `json:"year" validate:"omitempty,numeric"`
	PhoneNumber string `json:"phoneNumber"`
	Status      Status `json:"status" validate:"omitempty,entitystatus"`
}

func (us *UpdateStudent) Validate() error {
	us.FullName = core.CleanString(us.FullName)
	us.Email = core.CleanString(us.Email, true /* lower */)
	return core.Validate.Struct(us)
}

type NewAdmin struct {
	Name         string `json:"adminName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Department   string `json:"department"`
	PhoneNumber  string `json:"phoneNumber"`
	UniversityID int    `json:"universityId" validate:"required,gt=0"`
}

func (na *NewAdmin) Validate() error {
	na.Name = core.CleanString(na.Name)
	na.Email = core.CleanString(na.Email, true /* lower */)
	return core.Validate.Struct(na)
}

type UpdateAdmin struct {
	Name        string `json:"adminName"`
	Email       string `json:"email" validate:"omitempty,email"`
	Department  string `json:"department"`
	PhoneNumber string `json:"phoneNumber"`
	Status      Status `json:"status" validate:"omitempty,entitystatus"`
}

func (ua *UpdateAdmin) Validate() error {
	ua.Name = core.CleanString(ua.Name)
	ua.Email = core.CleanString(ua.Email, true /* lower */)
	return core.Validate.Struct(ua)
}

// NewEnrollment registers the session student into a course. StudentID and
// UniversityID are filled from the session identity, never from the request.
type NewEnrollment struct {
	CourseID     int `json:"courseId" validate:"required,gt=0"`
	StudentID    int `json:"-" validate:"required,gt=0"`
	UniversityID int `json:"-" validate:"required,gt=0"`
}

func (ne *NewEnrollment) Validate() error {
	return core.Validate.Struct(ne)
}

// TopicForm is the course-topic creation form. Requiredness of the file and
// URL slots depends on the material kind and is checked before any upload or
// backend call; everything else is validated by the backend.
type TopicForm struct {
	Title           string       `json:"title" validate:"required"`
	Description     string       `json:"topicdescription"`
	Material        MaterialKind `json:"materials" validate:"required,materialkind"`
	VideoURL        string       `json:"videoUrl" validate:"omitempty,url"`
	DocumentURL     string       `json:"documentUrl" validate:"omitempty,url"`
	DurationMinutes int          `json:"durationMinutes" validate:"gte=0"`
	SortOrder       int          `json:"sortOrder" validate:"gte=0"`
	CourseID        int          `json:"courseId" validate:"required,gt=0"`
	UniversityID    int          `json:"universityId"`
	InstructorID    int          `json:"instructorId"`

	// HasFile records whether a file was attached to the submission.
	HasFile bool `json:"-"`
}

func (f *TopicForm) Validate() error {
	f.Title = core.CleanString(f.Title)
	f.Description = core.CleanString(f.Description)
	return core.Validate.Struct(f)
}
