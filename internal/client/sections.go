package client

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Section is a tab of the admin panel.
type Section string

const (
	SectionDonors        Section = "donantes"
	SectionDonationTypes Section = "tipos"
	SectionCenters       Section = "centros"
	SectionDonations     Section = "donaciones"
	SectionContact       Section = "contacto"
	SectionNews          Section = "noticias"
)

// Sections lists the tabs in display order.
var Sections = []Section{
	SectionDonors, SectionDonationTypes, SectionCenters,
	SectionDonations, SectionContact, SectionNews,
}

// ParseSection accepts a section name or its collection name.
func ParseSection(s string) (Section, error) {
	for _, sec := range Sections {
		if s == string(sec) || s == sec.Collection() {
			return sec, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", s)
}

// Collection is the REST path segment the section reads and writes.
func (s Section) Collection() string {
	switch s {
	case SectionDonationTypes:
		return "tipos_donacion"
	case SectionDonations:
		return "donaciones_realizadas"
	}
	return string(s)
}

// ListItem is one row of a section list.
type ListItem struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

const noDate = "N/A"

// Describe builds the list row for rec.
func (s Section) Describe(rec Record) ListItem {
	item := ListItem{ID: rec.ID()}
	switch s {
	case SectionDonors:
		item.Title = strings.TrimSpace(str(rec, "nombre") + " " + str(rec, "apellidos"))
		item.Subtitle = str(rec, "email") + " - " + str(rec, "provincia")
	case SectionDonationTypes:
		item.Title = str(rec, "nombre")
		item.Subtitle = str(rec, "descripcion_general")
	case SectionCenters:
		item.Title = str(rec, "nombre")
		item.Subtitle = fmt.Sprintf("%s (%s)", str(rec, "direccion"), str(rec, "provincia"))
	case SectionDonations:
		item.Title = "Donación: " + item.ID
		item.Subtitle = fmt.Sprintf("Estado: %s - Fecha: %s", str(rec, "estado"), displayDate(rec["fecha_donacion"]))
	case SectionContact:
		item.Title = fmt.Sprintf("%s (%s)", str(rec, "nombre"), str(rec, "email"))
		item.Subtitle = str(rec, "mensaje")
	case SectionNews:
		item.Title = str(rec, "titulo")
		item.Subtitle = "Fecha: " + displayDate(rec["fecha"])
	}
	return item
}

// dateFields are rendered as YYYY-MM-DD in forms.
var dateFields = map[string]bool{
	"fecha_nacimiento": true,
	"fecha_donacion":   true,
	"fecha_envio":      true,
	"fecha":            true,
}

// FormValues flattens rec into the string inputs of the section form.
// _id is left out; null fields become empty inputs.
func (s Section) FormValues(rec Record) map[string]string {
	out := make(map[string]string, len(rec))
	for k, v := range rec {
		if k == "_id" {
			continue
		}
		switch {
		case dateFields[k]:
			if t, ok := parseDate(v); ok {
				out[k] = t.Format(time.DateOnly)
			} else {
				out[k] = ""
			}
		case s == SectionCenters && k == "coordenadas":
			coords, _ := v.(map[string]any)
			out["lat"] = scalar(coords["lat"])
			out["lon"] = scalar(coords["lon"])
		case s == SectionCenters && k == "tipos_disponibles":
			out[k] = joinList(v)
		default:
			out[k] = scalar(v)
		}
	}
	return out
}

func str(rec Record, key string) string {
	return scalar(rec[key])
}

func scalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func joinList(v any) string {
	items, _ := v.([]any)
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, scalar(it))
	}
	return strings.Join(parts, ", ")
}

func parseDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func displayDate(v any) string {
	t, ok := parseDate(v)
	if !ok {
		return noDate
	}
	return t.Format("02/01/2006")
}
