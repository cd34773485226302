package domain

// Coordinates is a WGS84 point. Vendors without a pinned location carry nil.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

type Schedule struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type Vendor struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
	Category string       `json:"category"`
	Address  string       `json:"address"`
	WhatsApp string       `json:"whatsapp"`
	Location *Coordinates `json:"location"`
	Schedule *Schedule    `json:"schedule,omitempty"`
	Image    string       `json:"image,omitempty"`
}

// Position reports the vendor's coordinates and whether it has any.
func (v Vendor) Position() (lat, lng float64, ok bool) {
	if v.Location == nil {
		return 0, 0, false
	}
	return v.Location.Lat, v.Location.Lng, true
}

// Destination is a point of interest shown on the storefront, ranked by
// distance the same way vendors are.
type Destination struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Location    *Coordinates `json:"location"`
	Image       string       `json:"image,omitempty"`
}

func (d Destination) Position() (lat, lng float64, ok bool) {
	if d.Location == nil {
		return 0, 0, false
	}
	return d.Location.Lat, d.Location.Lng, true
}
