package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Collection names of the managed resources. They double as the REST path segment.
const (
	CollectionDonors        = "donantes"
	CollectionDonationTypes = "tipos_donacion"
	CollectionCenters       = "centros"
	CollectionDonations     = "donaciones_realizadas"
	CollectionContact       = "contacto"
	CollectionNews          = "noticias"
	CollectionUsers         = "users"
)

// Defaults applied by the normalizers when the field is absent.
const (
	DefaultDonationStatus = "pendiente"
	DefaultNewsImage      = "ilustraciones_logos/sang.svg"
)

// Donor is a person who donates or may donate.
type Donor struct {
	ID                  bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Nombre              string        `bson:"nombre" json:"nombre"`
	Apellidos           *string       `bson:"apellidos" json:"apellidos"`
	Email               string        `bson:"email" json:"email"`
	Telefono            *string       `bson:"telefono" json:"telefono"`
	FechaNacimiento     *time.Time    `bson:"fecha_nacimiento" json:"fecha_nacimiento"`
	Provincia           *string       `bson:"provincia" json:"provincia"`
	EsDonanteRegistrado bool          `bson:"es_donante_registrado" json:"es_donante_registrado"`
}

// DonationType describes a kind of donation (blood, bone marrow, ...).
type DonationType struct {
	ID                 bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Nombre             string        `bson:"nombre" json:"nombre"`
	DescripcionGeneral *string       `bson:"descripcion_general" json:"descripcion_general"`
	Requisitos         *string       `bson:"requisitos" json:"requisitos"`
	Pasos              *string       `bson:"pasos" json:"pasos"`
	Beneficios         *string       `bson:"beneficios" json:"beneficios"`
	ColorIdentidad     *string       `bson:"color_identidad" json:"color_identidad"`
}

// Coordinates is a map position. Either component may be null.
type Coordinates struct {
	Lat *float64 `bson:"lat" json:"lat"`
	Lon *float64 `bson:"lon" json:"lon"`
}

// Complete reports whether both components are present.
func (c *Coordinates) Complete() bool {
	return c != nil && c.Lat != nil && c.Lon != nil
}

// Center is a place where donations are collected.
type Center struct {
	ID               bson.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Nombre           string          `bson:"nombre" json:"nombre"`
	Direccion        *string         `bson:"direccion" json:"direccion"`
	Provincia        *string         `bson:"provincia" json:"provincia"`
	Telefono         *string         `bson:"telefono" json:"telefono"`
	EmailContacto    *string         `bson:"email_contacto" json:"email_contacto"`
	Horario          *string         `bson:"horario" json:"horario"`
	Coordenadas      *Coordinates    `bson:"coordenadas" json:"coordenadas"`
	TiposDisponibles []bson.ObjectID `bson:"tipos_disponibles" json:"tipos_disponibles"`
}

// OffersType reports whether the center lists the given donation type.
func (c Center) OffersType(id bson.ObjectID) bool {
	for _, t := range c.TiposDisponibles {
		if t == id {
			return true
		}
	}
	return false
}

// Donation records a completed (or scheduled) donation.
// The referenced donor, type and center are not checked for existence.
type Donation struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	IDDonante     bson.ObjectID `bson:"id_donante" json:"id_donante"`
	IDTipo        bson.ObjectID `bson:"id_tipo" json:"id_tipo"`
	IDCentro      bson.ObjectID `bson:"id_centro" json:"id_centro"`
	FechaDonacion *time.Time    `bson:"fecha_donacion" json:"fecha_donacion"`
	Estado        string        `bson:"estado" json:"estado"`
}

// ContactMessage is a message left through the public contact form.
type ContactMessage struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Nombre     string        `bson:"nombre" json:"nombre"`
	Email      string        `bson:"email" json:"email"`
	Mensaje    *string       `bson:"mensaje" json:"mensaje"`
	FechaEnvio time.Time     `bson:"fecha_envio" json:"fecha_envio"`
}

// NewsItem is an entry of the public news carousel.
type NewsItem struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Titulo    string        `bson:"titulo" json:"titulo"`
	Imagen    string        `bson:"imagen" json:"imagen"`
	Contenido string        `bson:"contenido" json:"contenido"`
	Fecha     time.Time     `bson:"fecha" json:"fecha"`
}
