package survey

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
)

// maxFormBytes caps a posted survey; the real form is a few KB.
const maxFormBytes = 1 << 20

type Handler struct {
	svc  *Service
	tmpl *template.Template
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, tmpl: newTemplates()}
}

// formPage is the view model for form.html.
type formPage struct {
	Values       url.Values
	Errors       *ValidationErrors
	Sections     []FormSection
	ReachChoices []ReachLengthChoice
	Today        string
	// CSRFField is the hidden token input; empty when the route is not
	// behind the CSRF middleware.
	CSRFField template.HTML
}

func (p formPage) Value(name string) string {
	return p.Values.Get(name)
}

func (p formPage) Checked(name string) bool {
	return checkboxValue(p.Values, name)
}

func (p formPage) Selected(name, value string) bool {
	return p.Values.Get(name) == value
}

func (p formPage) FieldErrors(name string) []string {
	if p.Errors == nil {
		return nil
	}
	return p.Errors.Fields[name]
}

func (p formPage) FormErrors() []string {
	if p.Errors == nil {
		return nil
	}
	return p.Errors.Form
}

func (h *Handler) newFormPage(r *http.Request, values url.Values, verrs *ValidationErrors) formPage {
	if values == nil {
		values = url.Values{}
	}
	return formPage{
		Values:       values,
		Errors:       verrs,
		Sections:     FormSections,
		ReachChoices: ReachLengthChoices,
		Today:        h.svc.Today().Format("2006-01-02"),
		CSRFField:    csrf.TemplateField(r),
	}
}

// ShowForm renders an empty survey form.
func (h *Handler) ShowForm(w http.ResponseWriter, r *http.Request) {
	render(w, h.tmpl, "form.html", http.StatusOK, h.newFormPage(r, nil, nil))
}

// SubmitForm validates and stores a posted survey. Invalid submissions get
// the form back with their values and errors; valid ones are redirected to
// the confirmation page.
func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Submit(r.Context(), DecodeForm(r.PostForm))
	if err != nil {
		var verrs *ValidationErrors
		switch {
		case errors.As(err, &verrs):
			render(w, h.tmpl, "form.html", http.StatusOK, h.newFormPage(r, r.PostForm, verrs))
		case errors.Is(err, ErrReachLengthCustomRequired):
			verrs = &ValidationErrors{}
			verrs.AddField("reach_length_custom", msgOtherRefused)
			render(w, h.tmpl, "form.html", http.StatusOK, h.newFormPage(r, r.PostForm, verrs))
		default:
			http.Error(w, "Failed to save survey", http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/success/%d/", rec.ID), http.StatusFound)
}

// Success confirms a stored survey.
func (h *Handler) Success(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "survey_id"), 10, 64)
	if err != nil || id == 0 {
		http.NotFound(w, r)
		return
	}

	rec, err := h.svc.Get(r.Context(), uint(id))
	if errors.Is(err, ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		LogError("load", err)
		http.Error(w, "Failed to load survey", http.StatusInternalServerError)
		return
	}

	render(w, h.tmpl, "success.html", http.StatusOK, rec)
}
