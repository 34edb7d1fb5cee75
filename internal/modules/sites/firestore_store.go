// README: Gazetteer backed by the Firestore storyPlaces collection.
package sites

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"nusavarta/internal/types"
)

const StoryPlacesCollection = "storyPlaces"

// firestoreSite mirrors the documents written by the mobile app's seed
// scripts; older documents use title/image instead of name/imageUrl.
type firestoreSite struct {
	Name        string   `firestore:"name,omitempty"`
	Title       string   `firestore:"title,omitempty"`
	Aliases     []string `firestore:"aliases,omitempty"`
	Category    string   `firestore:"category"`
	Description string   `firestore:"description"`
	Location    string   `firestore:"location,omitempty"`
	ImageURL    string   `firestore:"imageUrl,omitempty"`
	Image       string   `firestore:"image,omitempty"`
	Coordinates *struct {
		Latitude  float64 `firestore:"latitude"`
		Longitude float64 `firestore:"longitude"`
	} `firestore:"coordinates,omitempty"`
}

func (d firestoreSite) toSite(id string) Site {
	s := Site{
		ID:          types.ID(id),
		Name:        d.Name,
		Aliases:     d.Aliases,
		Category:    ParseCategory(d.Category),
		Description: d.Description,
		Location:    d.Location,
		ImageURL:    d.ImageURL,
	}
	if s.Name == "" {
		s.Name = d.Title
	}
	if s.ImageURL == "" {
		s.ImageURL = d.Image
	}
	if d.Coordinates != nil {
		s.Coordinates = types.Point{Lat: d.Coordinates.Latitude, Lng: d.Coordinates.Longitude}
	}
	return s
}

func fromSite(s Site) firestoreSite {
	d := firestoreSite{
		Name:        s.Name,
		Aliases:     s.Aliases,
		Category:    string(s.Category),
		Description: s.Description,
		Location:    s.Location,
		ImageURL:    s.ImageURL,
	}
	if s.Located() {
		d.Coordinates = &struct {
			Latitude  float64 `firestore:"latitude"`
			Longitude float64 `firestore:"longitude"`
		}{Latitude: s.Coordinates.Lat, Longitude: s.Coordinates.Lng}
	}
	return d
}

type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client, collection: StoryPlacesCollection}
}

func (s *FirestoreStore) List(ctx context.Context) ([]Site, error) {
	docs, err := s.client.Collection(s.collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.collection, err)
	}
	out := make([]Site, 0, len(docs))
	for _, doc := range docs {
		var d firestoreSite
		if err := doc.DataTo(&d); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", s.collection, doc.Ref.ID, err)
		}
		out = append(out, d.toSite(doc.Ref.ID))
	}
	return out, nil
}

// Upsert writes each site under its id, replacing existing documents.
func (s *FirestoreStore) Upsert(ctx context.Context, list []Site) error {
	for _, site := range list {
		if _, err := s.client.Collection(s.collection).Doc(string(site.ID)).Set(ctx, fromSite(site)); err != nil {
			return fmt.Errorf("write %s/%s: %w", s.collection, site.ID, err)
		}
	}
	return nil
}
