package site

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"vidar/internal/model"
)

// Fallback texts of a center card.
const (
	NoAddressText  = "Dirección no disponible"
	NoPhoneText    = "Sin teléfono"
	NoScheduleText = "Consultar horario"
	AllFilter      = "all"
	AllFilterLabel = "Ver Todos"
)

// FilterButton is one entry of the type filter bar.
type FilterButton struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// TypeIcon is a donation type offered by a center.
type TypeIcon struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
}

// Marker is a center placed on the map.
type Marker struct {
	CenterID string     `json:"center_id"`
	Name     string     `json:"name"`
	Lat      float64    `json:"lat"`
	Lon      float64    `json:"lon"`
	Address  string     `json:"address"`
	Phone    string     `json:"phone"`
	Icons    []TypeIcon `json:"icons"`
}

// Card is a center in the list below the map.
type Card struct {
	CenterID string     `json:"center_id"`
	Name     string     `json:"name"`
	Address  string     `json:"address"`
	Phone    string     `json:"phone"`
	Schedule string     `json:"schedule"`
	Icons    []TypeIcon `json:"icons"`
	OnMap    bool       `json:"on_map"`
}

// MapView is what the center locator displays for one filter.
type MapView struct {
	Filter    string         `json:"filter"`
	Filters   []FilterButton `json:"filters"`
	Markers   []Marker       `json:"markers"`
	Cards     []Card         `json:"cards"`
	NoCenters bool           `json:"no_centers"`
}

// BuildMap selects the centers offering the donation type filter (a type id, or AllFilter)
// and lays them out. Only centers with both coordinates get a marker; every selected one gets a card.
func BuildMap(centers []model.Center, types []model.DonationType, filter string) MapView {
	if filter == "" {
		filter = AllFilter
	}
	view := MapView{
		Filter:  filter,
		Filters: make([]FilterButton, 0, len(types)+1),
		Markers: []Marker{},
		Cards:   []Card{},
	}

	view.Filters = append(view.Filters, FilterButton{ID: AllFilter, Label: AllFilterLabel, Active: filter == AllFilter})
	byID := make(map[bson.ObjectID]model.DonationType, len(types))
	for _, t := range types {
		byID[t.ID] = t
		view.Filters = append(view.Filters, FilterButton{ID: t.ID.Hex(), Label: t.Nombre, Active: filter == t.ID.Hex()})
	}

	var want bson.ObjectID
	if filter != AllFilter {
		id, err := bson.ObjectIDFromHex(filter)
		if err != nil {
			view.NoCenters = true
			return view
		}
		want = id
	}

	for _, c := range centers {
		if filter != AllFilter && !c.OffersType(want) {
			continue
		}
		icons := iconsOf(c, byID)
		card := Card{
			CenterID: c.ID.Hex(),
			Name:     c.Nombre,
			Address:  orDefault(c.Direccion, NoAddressText),
			Phone:    orDefault(c.Telefono, NoPhoneText),
			Schedule: orDefault(c.Horario, NoScheduleText),
			Icons:    icons,
			OnMap:    c.Coordenadas.Complete(),
		}
		view.Cards = append(view.Cards, card)

		if card.OnMap {
			view.Markers = append(view.Markers, Marker{
				CenterID: card.CenterID,
				Name:     c.Nombre,
				Lat:      *c.Coordenadas.Lat,
				Lon:      *c.Coordenadas.Lon,
				Address:  orDefault(c.Direccion, ""),
				Phone:    orDefault(c.Telefono, ""),
				Icons:    icons,
			})
		}
	}
	view.NoCenters = len(view.Cards) == 0
	return view
}

// iconsOf resolves the offered types of c; unknown type ids are skipped.
func iconsOf(c model.Center, byID map[bson.ObjectID]model.DonationType) []TypeIcon {
	icons := make([]TypeIcon, 0, len(c.TiposDisponibles))
	for _, id := range c.TiposDisponibles {
		t, ok := byID[id]
		if !ok {
			continue
		}
		icons = append(icons, TypeIcon{Icon: IconFor(t.Nombre), Title: t.Nombre})
	}
	return icons
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
