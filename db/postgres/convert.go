package postgres

import (
	"github.com/xpsychometrics/collabmap/graph/model"
)

func ConvertToModel(center Center, collaborations []Collaboration) *model.Dataset {
	ds := model.Dataset{
		Center: model.CenterEntity{
			ID:          center.Key,
			Name:        center.Name,
			Institution: center.Institution,
			Country:     center.Country,
			City:        center.City,
			Location:    model.GeoPoint{Lat: center.Lat, Lng: center.Lng},
			Image:       center.Image,
		},
		Collaborations: make([]model.CollaborationRecord, 0, len(collaborations)),
	}
	for _, c := range collaborations {
		ds.Collaborations = append(ds.Collaborations, model.CollaborationRecord{
			Institution: c.Institution,
			Country:     c.Country,
			City:        c.City,
			Weight:      c.Weight,
			Location:    model.GeoPoint{Lat: c.Lat, Lng: c.Lng},
		})
	}
	return &ds
}

func ConvertToDB(ds *model.Dataset) (Center, []Collaboration) {
	center := Center{
		Key:         ds.Center.ID,
		Name:        ds.Center.Name,
		Institution: ds.Center.Institution,
		Country:     ds.Center.Country,
		City:        ds.Center.City,
		Lat:         ds.Center.Location.Lat,
		Lng:         ds.Center.Location.Lng,
		Image:       ds.Center.Image,
	}
	collaborations := make([]Collaboration, 0, len(ds.Collaborations))
	for i, r := range ds.Collaborations {
		collaborations = append(collaborations, Collaboration{
			Position:    i,
			Institution: r.Institution,
			Country:     r.Country,
			City:        r.City,
			Weight:      r.Weight,
			Lat:         r.Location.Lat,
			Lng:         r.Location.Lng,
		})
	}
	return center, collaborations
}
