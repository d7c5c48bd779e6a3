package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownService = errors.New("unknown service")

// ServiceID identifies a catalog entry. Its text form is the service name.
type ServiceID int

const (
	BanoCompleto ServiceID = iota + 1
	CortePelo
	CorteUnas
	PerfumePet
	LimpiezaDental
	AntiPulgas
	SpaCompleto
	TinteTemporal
	BanoMedicado
	Deslanado
)

type Category string

const (
	CategoryBath      Category = "baño"
	CategoryCut       Category = "corte"
	CategoryAesthetic Category = "estetica"
	CategoryHealth    Category = "salud"
)

type Service struct {
	ID          ServiceID
	Name        string
	Description string
	Price       float64
	DurationMin int
	Category    Category
	Glyph       string
	Popular     bool
}

var services = []Service{
	{BanoCompleto, "Baño Completo", "Baño con shampoo especial, secado y cepillado profesional", 25, 45, CategoryBath, "🛁", true},
	{CortePelo, "Corte de Pelo", "Corte profesional según raza y preferencias del dueño", 35, 60, CategoryCut, "✂️", true},
	{CorteUnas, "Corte de Uñas", "Corte y limado de uñas con revisión de almohadillas", 15, 20, CategoryAesthetic, "🐾", false},
	{PerfumePet, "Perfume Pet", "Aplicación de perfume especial para mascotas de larga duración", 10, 10, CategoryAesthetic, "🌸", true},
	{LimpiezaDental, "Limpieza Dental", "Limpieza profunda y revisión dental completa por especialista", 40, 30, CategoryHealth, "🦷", false},
	{AntiPulgas, "Anti-pulgas", "Aplicación de tratamiento preventivo contra pulgas y garrapatas", 20, 15, CategoryHealth, "🛡️", false},
	{SpaCompleto, "Spa Completo", "Baño, corte, uñas, perfume y masaje relajante premium", 80, 120, CategoryAesthetic, "💎", true},
	{TinteTemporal, "Tinte Temporal", "Tinte temporal de orejas o cola con productos seguros y no tóxicos", 25, 30, CategoryAesthetic, "🎨", false},
	{BanoMedicado, "Baño Medicado", "Baño terapéutico con productos especiales para problemas de piel", 35, 50, CategoryHealth, "💊", false},
	{Deslanado, "Deslanado", "Eliminación de pelo muerto para razas de doble capa", 30, 45, CategoryCut, "🧹", false},
}

// All returns the catalog in display order.
func All() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

// List filters the catalog by category and by a free-text query over name
// and description. Empty filters match everything.
func List(category, query string) []Service {
	category = strings.ToLower(strings.TrimSpace(category))
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]Service, 0, len(services))
	for _, s := range services {
		if category != "" && category != "todos" && string(s.Category) != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(s.Name), query) &&
			!strings.Contains(strings.ToLower(s.Description), query) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func ByID(id ServiceID) (Service, bool) {
	if !id.Valid() {
		return Service{}, false
	}
	return services[int(id)-1], true
}

func ByName(name string) (ServiceID, bool) {
	name = strings.TrimSpace(name)
	for _, s := range services {
		if strings.EqualFold(s.Name, name) {
			return s.ID, true
		}
	}
	return 0, false
}

func (id ServiceID) Valid() bool {
	return id >= BanoCompleto && int(id) <= len(services)
}

func (id ServiceID) String() string {
	if s, ok := ByID(id); ok {
		return s.Name
	}
	return "ServiceID(" + strconv.Itoa(int(id)) + ")"
}

func (id ServiceID) MarshalText() ([]byte, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownService, int(id))
	}
	return []byte(id.String()), nil
}

// UnmarshalText accepts a service name or its numeric id.
func (id *ServiceID) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if n, err := strconv.Atoi(s); err == nil {
		if !ServiceID(n).Valid() {
			return fmt.Errorf("%w: %s", ErrUnknownService, s)
		}
		*id = ServiceID(n)
		return nil
	}
	v, ok := ByName(s)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownService, s)
	}
	*id = v
	return nil
}

// Resolve maps service names to ids, dropping repeats while keeping the
// first-seen order.
func Resolve(names []string) (ServiceList, error) {
	out := make(ServiceList, 0, len(names))
	for _, n := range names {
		var id ServiceID
		if err := id.UnmarshalText([]byte(n)); err != nil {
			return nil, err
		}
		if !out.Contains(id) {
			out = append(out, id)
		}
	}
	return out, nil
}
