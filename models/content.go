package models

import (
	"go.mongodb.org/mongo-driver/bson"
)

// Document is a loosely-typed content record (service, banner, faq or gallery item).
type Document = bson.M

// Resource describes one content collection exposed over the API.
type Resource struct {
	// Name is the singular label used in messages, e.g. "Service".
	Name string
	// Collection is the Mongo collection and the URL segment, e.g. "services".
	Collection string
	// HasImage marks collections whose documents carry an uploaded image.
	HasImage bool
}

var (
	ServiceResource = Resource{Name: "Service", Collection: "services", HasImage: true}
	BannerResource  = Resource{Name: "Banner", Collection: "banners", HasImage: true}
	FAQResource     = Resource{Name: "FAQ", Collection: "faqs"}
	GalleryResource = Resource{Name: "Gallery item", Collection: "galleries", HasImage: true}
)

// InsertResult acknowledges a stored document.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// DeleteResult reports how many documents a delete removed (zero or one).
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// DashboardStats holds per-collection document counts.
type DashboardStats struct {
	Services  int64 `json:"services"`
	Banners   int64 `json:"banners"`
	FAQs      int64 `json:"faqs"`
	Galleries int64 `json:"galleries"`
}
