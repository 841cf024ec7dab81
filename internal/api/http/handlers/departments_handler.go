package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/govhub/helpdesk-portal/internal/domain"
	"github.com/govhub/helpdesk-portal/internal/export"
	"github.com/govhub/helpdesk-portal/internal/forms"
	"github.com/govhub/helpdesk-portal/internal/service"
	"github.com/govhub/helpdesk-portal/internal/session"
	"github.com/govhub/helpdesk-portal/internal/view"
)

const departmentsPath = "/departments"

// DepartmentsHandler serves the department screens.
type DepartmentsHandler struct {
	Base
	departments *service.DepartmentService
}

func NewDepartmentsHandler(base Base, departments *service.DepartmentService) *DepartmentsHandler {
	return &DepartmentsHandler{Base: base, departments: departments}
}

type departmentList struct {
	Rows      []domain.Department
	CanManage bool
}

type departmentDetail struct {
	Department domain.Department
	CanManage  bool
}

type departmentFormData struct {
	Mode          forms.Mode
	Form          forms.DepartmentForm
	Errors        forms.Errors
	Heads         []domain.Staff
	Action        string
	ReasonsAction string
}

// List GET /departments.
func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	caller := callerFrom(c)
	pg := h.page(c, "Departments", "Department")
	screen := view.Load(func() ([]domain.Department, error) {
		return h.departments.List(c.UserContext(), caller)
	})
	if err := h.soft(c, pg, screen.Err, "Failed to fetch departments"); err != nil {
		return err
	}
	pg.Data = departmentList{Rows: screen.Data, CanManage: service.CanManageDepartments(caller.Staff)}
	return h.render(c, "departments/list", pg)
}

// ExportPDF GET /departments/export.pdf.
func (h *DepartmentsHandler) ExportPDF(c *fiber.Ctx) error { return h.export(c, "pdf") }

// ExportXLSX GET /departments/export.xlsx.
func (h *DepartmentsHandler) ExportXLSX(c *fiber.Ctx) error { return h.export(c, "xlsx") }

func (h *DepartmentsHandler) export(c *fiber.Ctx, format string) error {
	depts, err := h.departments.List(c.UserContext(), callerFrom(c))
	if err != nil {
		return h.fail(c, err, "Export failed: ", departmentsPath)
	}
	rows := export.Select(depts, scopeFrom(c), func(d domain.Department) string { return d.ID })
	return sendTable(c, format, "departments", export.DepartmentTable(rows))
}

// Show GET /departments/:id.
func (h *DepartmentsHandler) Show(c *fiber.Ctx) error {
	caller := callerFrom(c)
	dept, err := h.departments.Get(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return h.fail(c, err, "Failed to fetch department: ", departmentsPath)
	}
	pg := h.page(c, dept.DepartmentName, "Department")
	pg.Data = departmentDetail{Department: *dept, CanManage: service.CanManageDepartments(caller.Staff)}
	return h.render(c, "departments/detail", pg)
}

// PDF GET /departments/:id/pdf.
func (h *DepartmentsHandler) PDF(c *fiber.Ctx) error {
	dept, err := h.departments.Get(c.UserContext(), callerFrom(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "Failed to fetch department: ", departmentsPath)
	}
	return sendReport(c, "department-"+dept.ID, export.DepartmentReport(*dept))
}

// New GET /departments/new.
func (h *DepartmentsHandler) New(c *fiber.Ctx) error {
	return h.form(c, forms.Create(), forms.NewDepartmentForm(), nil, fiber.StatusOK)
}

// Edit GET /departments/:id/edit.
func (h *DepartmentsHandler) Edit(c *fiber.Ctx) error {
	id := c.Params("id")
	dept, err := h.departments.Get(c.UserContext(), callerFrom(c), id)
	if err != nil {
		return h.fail(c, err, "Failed to fetch department: ", departmentsPath)
	}
	return h.form(c, forms.Edit(id), forms.DepartmentFormFrom(*dept), nil, fiber.StatusOK)
}

// Create POST /departments.
func (h *DepartmentsHandler) Create(c *fiber.Ctx) error {
	return h.save(c, forms.Create())
}

// Update POST /departments/:id.
func (h *DepartmentsHandler) Update(c *fiber.Ctx) error {
	return h.save(c, forms.Edit(c.Params("id")))
}

func (h *DepartmentsHandler) save(c *fiber.Ctx, mode forms.Mode) error {
	var f forms.DepartmentForm
	if err := c.BodyParser(&f); err != nil {
		return h.form(c, mode, f, forms.Errors{"form": "Invalid form submission"}, fiber.StatusBadRequest)
	}
	if errs := f.Validate(); !errs.Valid() {
		return h.form(c, mode, f, errs, fiber.StatusUnprocessableEntity)
	}
	dept := f.Department(mode)
	if err := h.departments.Save(c.UserContext(), callerFrom(c), mode, &dept); err != nil {
		return h.fail(c, err, "Failed to save department: ", departmentsPath)
	}
	msg := "Department added successfully"
	if mode.IsEdit() {
		msg = "Department updated successfully"
	}
	return h.redirect(c, session.FlashSuccess, msg, departmentsPath)
}

// Reasons POST /departments/:id/reasons adds or removes an appointment
// reason row and re-renders the form without saving.
func (h *DepartmentsHandler) Reasons(c *fiber.Ctx) error {
	mode := forms.Edit(c.Params("id"))
	if c.Params("id") == "new" {
		mode = forms.Create()
	}
	var f forms.DepartmentForm
	if err := c.BodyParser(&f); err != nil {
		f = forms.NewDepartmentForm()
	}
	if c.FormValue("add") != "" {
		f.AddReason()
		if v := strings.TrimSpace(c.FormValue("newReason")); v != "" {
			f.SetReason(len(f.AppointmentReasons)-1, v)
		}
	}
	if raw := c.FormValue("remove"); raw != "" {
		if i, err := strconv.Atoi(raw); err == nil {
			f.RemoveReason(i)
		}
	}
	return h.form(c, mode, f, nil, fiber.StatusOK)
}

func (h *DepartmentsHandler) form(c *fiber.Ctx, mode forms.Mode, f forms.DepartmentForm, errs forms.Errors, status int) error {
	title, action, reasons := "Add Department", departmentsPath, departmentsPath+"/new/reasons"
	if mode.IsEdit() {
		title = "Edit Department"
		action = departmentsPath + "/" + mode.ID
		reasons = action + "/reasons"
	}
	pg := h.page(c, title, "Department")
	heads, err := h.departments.ListHeads(c.UserContext(), callerFrom(c))
	if err := h.soft(c, pg, err, "Failed to fetch department heads"); err != nil {
		return err
	}
	pg.Data = departmentFormData{Mode: mode, Form: f, Errors: errs, Heads: heads, Action: action, ReasonsAction: reasons}
	c.Status(status)
	return h.render(c, "departments/form", pg)
}

// ConfirmDelete GET /departments/:id/delete.
func (h *DepartmentsHandler) ConfirmDelete(c *fiber.Ctx) error {
	return h.confirmPage(c, "Department", "department", c.Query("name"), departmentsPath+"/"+c.Params("id")+"/delete")
}

// Delete POST /departments/:id/delete.
func (h *DepartmentsHandler) Delete(c *fiber.Ctx) error {
	if !confirmed(c) {
		return h.redirect(c, session.FlashInfo, msgDeletionCanceled, departmentsPath)
	}
	if err := h.departments.Delete(c.UserContext(), callerFrom(c), c.Params("id")); err != nil {
		return h.fail(c, err, "Failed to delete department: ", departmentsPath)
	}
	return h.redirect(c, session.FlashSuccess, "Department deleted successfully", departmentsPath)
}
