package forms

import "strings"

// LoginForm is the staff sign-in form.
type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (f LoginForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Email) == "" {
		errs.add("email", "Email is required")
	}
	if f.Password == "" {
		errs.add("password", "Password is required")
	}
	return errs
}

// AnnouncementForm posts a department announcement.
type AnnouncementForm struct {
	Content string `form:"content"`
}

func (f AnnouncementForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Content) == "" {
		errs.add("content", "Announcement content is required")
	}
	return errs
}

// MessageForm sends a message to another department.
type MessageForm struct {
	RecipientDepartment string `form:"recipientDepartment"`
	Content             string `form:"content"`
}

func (f MessageForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.RecipientDepartment) == "" {
		errs.add("recipientDepartment", "Please enter a message and select a department")
	}
	if strings.TrimSpace(f.Content) == "" {
		errs.add("content", "Please enter a message and select a department")
	}
	return errs
}
