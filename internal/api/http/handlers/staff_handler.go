package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/govhub/helpdesk-portal/internal/domain"
	"github.com/govhub/helpdesk-portal/internal/export"
	"github.com/govhub/helpdesk-portal/internal/forms"
	"github.com/govhub/helpdesk-portal/internal/service"
	"github.com/govhub/helpdesk-portal/internal/session"
	"github.com/govhub/helpdesk-portal/internal/view"
	apperrors "github.com/govhub/helpdesk-portal/pkg/util/errorutil"
)

const staffPath = "/staff"

var genders = []string{"Male", "Female", "Other"}

// StaffHandler serves the staff screens.
type StaffHandler struct {
	Base
	staff       *service.StaffService
	departments *service.DepartmentService
	now         func() time.Time
}

func NewStaffHandler(base Base, staff *service.StaffService, departments *service.DepartmentService) *StaffHandler {
	return &StaffHandler{Base: base, staff: staff, departments: departments, now: time.Now}
}

type staffRow struct {
	domain.Staff
	DepartmentName string
	CanManage      bool
}

type staffList struct {
	Rows   []staffRow
	CanAdd bool
}

type staffDetail struct {
	Staff          domain.Staff
	DepartmentName string
	CanManage      bool
}

type staffFormData struct {
	Mode        forms.Mode
	Form        forms.StaffForm
	Errors      forms.Errors
	Departments []domain.Department
	Roles       []domain.Role
	Genders     []string
	Action      string
}

// departmentNames loads id to name lookups. A failure only costs the names.
func (h *StaffHandler) departmentNames(c *fiber.Ctx, pg *view.Page) (map[string]string, error) {
	screen := view.Load(func() ([]domain.Department, error) {
		return h.departments.List(c.UserContext(), callerFrom(c))
	})
	if err := h.soft(c, pg, screen.Err, "Failed to fetch departments"); err != nil {
		return nil, err
	}
	return domain.DepartmentNames(screen.Data), nil
}

// List GET /staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	caller := callerFrom(c)
	pg := h.page(c, "Staff", "Staff")
	screen := view.Load(func() ([]domain.Staff, error) {
		return h.staff.List(c.UserContext(), caller)
	})
	if err := h.soft(c, pg, screen.Err, "Failed to fetch staff"); err != nil {
		return err
	}
	names := map[string]string{}
	if !screen.Failed() {
		var err error
		if names, err = h.departmentNames(c, pg); err != nil {
			return err
		}
	}
	rows := make([]staffRow, 0, len(screen.Data))
	for _, s := range screen.Data {
		rows = append(rows, staffRow{
			Staff:          s,
			DepartmentName: nameOr(names, s.DepartmentID),
			CanManage:      service.CanManageStaff(caller.Staff, s),
		})
	}
	pg.Data = staffList{Rows: rows, CanAdd: service.CanAddStaff(caller.Staff)}
	return h.render(c, "staff/list", pg)
}

func (h *StaffHandler) ExportPDF(c *fiber.Ctx) error  { return h.export(c, "pdf") }
func (h *StaffHandler) ExportXLSX(c *fiber.Ctx) error { return h.export(c, "xlsx") }

func (h *StaffHandler) export(c *fiber.Ctx, format string) error {
	caller := callerFrom(c)
	all, err := h.staff.List(c.UserContext(), caller)
	if err != nil {
		return h.fail(c, err, "Export failed: ", staffPath)
	}
	depts, err := h.departments.List(c.UserContext(), caller)
	if err != nil {
		return h.fail(c, err, "Export failed: ", staffPath)
	}
	rows := export.Select(all, scopeFrom(c), func(s domain.Staff) string { return s.ID })
	return sendTable(c, format, "staff", export.StaffTable(rows, domain.DepartmentNames(depts)))
}

// Show GET /staff/:id.
func (h *StaffHandler) Show(c *fiber.Ctx) error {
	caller := callerFrom(c)
	st, err := h.staff.Get(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return h.fail(c, err, "Failed to fetch staff member: ", staffPath)
	}
	pg := h.page(c, st.FullName(), "Staff")
	names, err := h.departmentNames(c, pg)
	if err != nil {
		return err
	}
	pg.Data = staffDetail{
		Staff:          *st,
		DepartmentName: nameOr(names, st.DepartmentID),
		CanManage:      service.CanManageStaff(caller.Staff, *st),
	}
	return h.render(c, "staff/detail", pg)
}

// PDF GET /staff/:id/pdf.
func (h *StaffHandler) PDF(c *fiber.Ctx) error {
	st, err := h.staff.Get(c.UserContext(), callerFrom(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "Failed to fetch staff member: ", staffPath)
	}
	return sendReport(c, "staff-"+st.ID, export.StaffReport(*st))
}

// New GET /staff/new.
func (h *StaffHandler) New(c *fiber.Ctx) error {
	if !service.CanAddStaff(callerFrom(c).Staff) {
		return apperrors.NewForbidden("only admins can add staff")
	}
	return h.form(c, forms.Create(), forms.StaffForm{Role: string(domain.RoleStaff)}, nil, fiber.StatusOK)
}

// Edit GET /staff/:id/edit.
func (h *StaffHandler) Edit(c *fiber.Ctx) error {
	caller := callerFrom(c)
	id := c.Params("id")
	st, err := h.staff.Get(c.UserContext(), caller, id)
	if err != nil {
		return h.fail(c, err, "Failed to fetch staff member: ", staffPath)
	}
	if !service.CanManageStaff(caller.Staff, *st) {
		return apperrors.NewForbidden("staff member belongs to another department")
	}
	return h.form(c, forms.Edit(id), forms.StaffFormFrom(*st), nil, fiber.StatusOK)
}

func (h *StaffHandler) Create(c *fiber.Ctx) error { return h.save(c, forms.Create()) }

func (h *StaffHandler) Update(c *fiber.Ctx) error { return h.save(c, forms.Edit(c.Params("id"))) }

func (h *StaffHandler) save(c *fiber.Ctx, mode forms.Mode) error {
	var f forms.StaffForm
	if err := c.BodyParser(&f); err != nil {
		return h.form(c, mode, f, forms.Errors{"form": "Invalid form submission"}, fiber.StatusBadRequest)
	}
	if errs := f.Validate(mode, h.now()); !errs.Valid() {
		return h.form(c, mode, f, errs, fiber.StatusUnprocessableEntity)
	}
	st := f.Staff(mode)
	if err := h.staff.Save(c.UserContext(), callerFrom(c), mode, &st); err != nil {
		return h.fail(c, err, "Failed to save staff member: ", staffPath)
	}
	msg := "Staff added successfully"
	if mode.IsEdit() {
		msg = "Staff updated successfully"
	}
	return h.redirect(c, session.FlashSuccess, msg, staffPath)
}

func (h *StaffHandler) form(c *fiber.Ctx, mode forms.Mode, f forms.StaffForm, errs forms.Errors, status int) error {
	caller := callerFrom(c)
	title, action := "Add Staff", staffPath
	if mode.IsEdit() {
		title, action = "Edit Staff", staffPath+"/"+mode.ID
	}
	pg := h.page(c, title, "Staff")
	screen := view.Load(func() ([]domain.Department, error) {
		return h.departments.List(c.UserContext(), caller)
	})
	if err := h.soft(c, pg, screen.Err, "Failed to fetch departments"); err != nil {
		return err
	}
	depts := screen.Data
	roles := []domain.Role{domain.RoleAdmin, domain.RoleDepartmentHead, domain.RoleStaff}
	if !caller.Role().IsAdmin() {
		roles = []domain.Role{domain.RoleDepartmentHead, domain.RoleStaff}
		depts = ownDepartment(depts, caller.Staff.DepartmentID)
	}
	pg.Data = staffFormData{
		Mode: mode, Form: f, Errors: errs,
		Departments: depts, Roles: roles, Genders: genders,
		Action: action,
	}
	c.Status(status)
	return h.render(c, "staff/form", pg)
}

// ConfirmDelete GET /staff/:id/delete.
func (h *StaffHandler) ConfirmDelete(c *fiber.Ctx) error {
	return h.confirmPage(c, "Staff", "staff member", c.Query("name"), staffPath+"/"+c.Params("id")+"/delete")
}

// Delete POST /staff/:id/delete.
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	if !confirmed(c) {
		return h.redirect(c, session.FlashInfo, msgDeletionCanceled, staffPath)
	}
	if err := h.staff.Delete(c.UserContext(), callerFrom(c), c.Params("id")); err != nil {
		return h.fail(c, err, "Failed to delete staff member: ", staffPath)
	}
	return h.redirect(c, session.FlashSuccess, "Staff deleted successfully", staffPath)
}

func ownDepartment(depts []domain.Department, id string) []domain.Department {
	for _, d := range depts {
		if d.ID == id {
			return []domain.Department{d}
		}
	}
	return nil
}

func nameOr(names map[string]string, id string) string {
	if n, ok := names[id]; ok {
		return n
	}
	return id
}
