package normalize

import (
	"time"

	"vidar/internal/model"
)

// Donor normalizes a donor body. nombre and email are required.
func Donor(raw Raw) (model.Donor, error) {
	if err := requireFields(raw, "nombre", "email"); err != nil {
		return model.Donor{}, err
	}
	birth, err := optionalDate(raw, "fecha_nacimiento")
	if err != nil {
		return model.Donor{}, err
	}
	return model.Donor{
		Nombre:              requiredString(raw, "nombre"),
		Apellidos:           optionalString(raw, "apellidos"),
		Email:               requiredString(raw, "email"),
		Telefono:            optionalString(raw, "telefono"),
		FechaNacimiento:     birth,
		Provincia:           optionalString(raw, "provincia"),
		EsDonanteRegistrado: flag(raw, "es_donante_registrado"),
	}, nil
}

// DonationType normalizes a donation type body. nombre is required.
func DonationType(raw Raw) (model.DonationType, error) {
	if err := requireFields(raw, "nombre"); err != nil {
		return model.DonationType{}, err
	}
	return model.DonationType{
		Nombre:             requiredString(raw, "nombre"),
		DescripcionGeneral: optionalString(raw, "descripcion_general"),
		Requisitos:         optionalString(raw, "requisitos"),
		Pasos:              optionalString(raw, "pasos"),
		Beneficios:         optionalString(raw, "beneficios"),
		ColorIdentidad:     optionalString(raw, "color_identidad"),
	}, nil
}

// Center normalizes a center body. nombre is required; lat and lon arrive as
// flat fields and are folded into coordenadas when either one is given.
func Center(raw Raw) (model.Center, error) {
	if err := requireFields(raw, "nombre"); err != nil {
		return model.Center{}, err
	}

	var coords *model.Coordinates
	if present(raw, "lat") || present(raw, "lon") {
		lat, err := optionalFloat(raw, "lat")
		if err != nil {
			return model.Center{}, err
		}
		lon, err := optionalFloat(raw, "lon")
		if err != nil {
			return model.Center{}, err
		}
		coords = &model.Coordinates{Lat: lat, Lon: lon}
	}

	return model.Center{
		Nombre:           requiredString(raw, "nombre"),
		Direccion:        optionalString(raw, "direccion"),
		Provincia:        optionalString(raw, "provincia"),
		Telefono:         optionalString(raw, "telefono"),
		EmailContacto:    optionalString(raw, "email_contacto"),
		Horario:          optionalString(raw, "horario"),
		Coordenadas:      coords,
		TiposDisponibles: objectIDList(raw, "tipos_disponibles"),
	}, nil
}

// Donation normalizes a donation body. The three references are required and
// must be well-formed identifiers; they are not looked up.
func Donation(raw Raw) (model.Donation, error) {
	if err := requireFields(raw, "id_donante", "id_tipo", "id_centro"); err != nil {
		return model.Donation{}, err
	}
	donor, err := objectID(raw, "id_donante")
	if err != nil {
		return model.Donation{}, err
	}
	kind, err := objectID(raw, "id_tipo")
	if err != nil {
		return model.Donation{}, err
	}
	center, err := objectID(raw, "id_centro")
	if err != nil {
		return model.Donation{}, err
	}
	date, err := optionalDate(raw, "fecha_donacion")
	if err != nil {
		return model.Donation{}, err
	}

	status := model.DefaultDonationStatus
	if s := optionalString(raw, "estado"); s != nil {
		status = *s
	}

	return model.Donation{
		IDDonante:     donor,
		IDTipo:        kind,
		IDCentro:      center,
		FechaDonacion: date,
		Estado:        status,
	}, nil
}

// ContactNormalizer normalizes contact messages; fecha_envio defaults to Now.
type ContactNormalizer struct {
	Now func() time.Time
}

// Normalize implements Normalizer.
func (n ContactNormalizer) Normalize(raw Raw) (model.ContactMessage, error) {
	if err := requireFields(raw, "nombre", "email"); err != nil {
		return model.ContactMessage{}, err
	}
	sent, err := dateOrNow(raw, "fecha_envio", clock(n.Now))
	if err != nil {
		return model.ContactMessage{}, err
	}
	return model.ContactMessage{
		Nombre:     requiredString(raw, "nombre"),
		Email:      requiredString(raw, "email"),
		Mensaje:    optionalString(raw, "mensaje"),
		FechaEnvio: sent,
	}, nil
}

// NewsNormalizer normalizes news items; fecha defaults to Now and imagen to the placeholder.
type NewsNormalizer struct {
	Now func() time.Time
}

// Normalize implements Normalizer.
func (n NewsNormalizer) Normalize(raw Raw) (model.NewsItem, error) {
	if err := requireFields(raw, "titulo", "contenido"); err != nil {
		return model.NewsItem{}, err
	}
	date, err := dateOrNow(raw, "fecha", clock(n.Now))
	if err != nil {
		return model.NewsItem{}, err
	}
	image := model.DefaultNewsImage
	if s := optionalString(raw, "imagen"); s != nil {
		image = *s
	}
	return model.NewsItem{
		Titulo:    requiredString(raw, "titulo"),
		Imagen:    image,
		Contenido: requiredString(raw, "contenido"),
		Fecha:     date,
	}, nil
}

func clock(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}

var (
	_ Normalizer[model.Donor]          = Func[model.Donor](Donor)
	_ Normalizer[model.DonationType]   = Func[model.DonationType](DonationType)
	_ Normalizer[model.Center]         = Func[model.Center](Center)
	_ Normalizer[model.Donation]       = Func[model.Donation](Donation)
	_ Normalizer[model.ContactMessage] = ContactNormalizer{}
	_ Normalizer[model.NewsItem]       = NewsNormalizer{}
)
