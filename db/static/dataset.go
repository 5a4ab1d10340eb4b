// Package static is the built-in dataset, compiled into the binary.
package static

import (
	"context"

	"github.com/xpsychometrics/collabmap/graph/model"
)

var center = model.CenterEntity{
	ID:          "Minneapolis",
	Name:        "Minneapolis, MN",
	Institution: "University of Minnesota",
	Country:     model.HomeCountry,
	City:        "Minneapolis",
	Location:    model.GeoPoint{Lat: 44.9778, Lng: -93.2650},
	Image:       "assets/images/panda-logo.svg",
}

func at(lat, lng float64) model.GeoPoint {
	return model.GeoPoint{Lat: lat, Lng: lng}
}

// order matters, labels are placed in this order
var collaborations = []model.CollaborationRecord{
	{Weight: 4, Institution: "Jiangxi Normal University", Country: "China Mainland", City: "Nanchang", Location: at(28.68, 115.86)},
	{Weight: 1, Institution: "Zhejiang Normal University", Country: "China Mainland", City: "Jinhua", Location: at(29.13, 119.64)},
	{Weight: 3, Institution: "Peking University", Country: "China Mainland", City: "Beijing", Location: at(39.99, 116.31)},
	{Weight: 1, Institution: "Tsinghua University", Country: "China Mainland", City: "Beijing", Location: at(40.00, 116.33)},
	{Weight: 1, Institution: "Hefei University of Technology", Country: "China Mainland", City: "Hefei", Location: at(31.85, 117.30)},
	{Weight: 1, Institution: "Beijing Normal University", Country: "China Mainland", City: "Beijing", Location: at(39.96, 116.37)},
	{Weight: 1, Institution: "TU Dortmund University", Country: "Germany", City: "Dortmund", Location: at(51.49, 7.41)},
	{Weight: 1, Institution: "Leibniz Institute for Science and Mathematics Education", Country: "Germany", City: "Kiel", Location: at(54.34, 10.12)},
	{Weight: 1, Institution: "Centre for International Student Assessment", Country: "Germany", City: "Munich", Location: at(48.15, 11.57)},
	{Weight: 10, Institution: "The University of Hong Kong", Country: "Hong Kong", City: "Hong Kong", Location: at(22.28, 114.14)},
	{Weight: 1, Institution: "The Islamic Azad University", Country: "Iran", City: "Tehran", Location: at(35.70, 51.39)},
	{Weight: 3, Institution: "Universidad Autónoma de Madrid", Country: "Spain", City: "Madrid", Location: at(40.54, -3.69)},
	{Weight: 2, Institution: "Universidad Pontificia Comillas", Country: "Spain", City: "Madrid", Location: at(40.43, -3.71)},
	{Weight: 1, Institution: "National University of Tainan", Country: "Taiwan", City: "Tainan", Location: at(22.99, 120.20)},
	{Weight: 1, Institution: "Harran University", Country: "Turkey", City: "Şanlıurfa", Location: at(37.17, 38.99)},
	{Weight: 3, Institution: "University of Michigan", Country: "United States", City: "Ann Arbor", Location: at(42.28, -83.74)},
	{Weight: 2, Institution: "University of Arkansas", Country: "United States", City: "Fayetteville", Location: at(36.07, -94.17)},
	{Weight: 5, Institution: "University of Georgia", Country: "United States", City: "Athens, GA", Location: at(33.95, -83.37)},
	{Weight: 1, Institution: "American Institutes for Research (AIR)", Country: "United States", City: "Arlington", Location: at(38.88, -77.10)},
	{Weight: 1, Institution: "Columbia University", Country: "United States", City: "New York", Location: at(40.81, -73.96)},
	{Weight: 1, Institution: "National Board of Osteopathic Medical Examiners", Country: "United States", City: "Chicago", Location: at(41.88, -87.63)},
	{Weight: 10, Institution: "University of Alabama", Country: "United States", City: "Tuscaloosa", Location: at(33.21, -87.55)},
	{Weight: 1, Institution: "Athens State University", Country: "United States", City: "Athens, AL", Location: at(34.80, -86.97)},
	{Weight: 1, Institution: "University of New Mexico", Country: "United States", City: "Albuquerque", Location: at(35.08, -106.62)},
	{Weight: 1, Institution: "College Board", Country: "United States", City: "New York", Location: at(40.71, -74.01)},
	{Weight: 1, Institution: "University of Virginia", Country: "United States", City: "Charlottesville", Location: at(38.03, -78.51)},
	{Weight: 1, Institution: "University of North Texas Health Science", Country: "United States", City: "Fort Worth", Location: at(32.75, -97.37)},
	{Weight: 1, Institution: "University of Washington", Country: "United States", City: "Seattle", Location: at(47.66, -122.31)},
	{Weight: 1, Institution: "Michigan State University", Country: "United States", City: "East Lansing", Location: at(42.72, -84.48)},
	{Weight: 1, Institution: "University of Illinois at Urbana-Champaign", Country: "United States", City: "Urbana", Location: at(40.10, -88.23)},
	{Weight: 1, Institution: "University of South Carolina", Country: "United States", City: "Columbia, SC", Location: at(33.99, -81.03)},
	{Weight: 1, Institution: "University of California Merced", Country: "United States", City: "Merced", Location: at(37.37, -120.42)},
	{Weight: 1, Institution: "University of Maryland", Country: "United States", City: "College Park", Location: at(38.99, -76.94)},
	{Weight: 1, Institution: "Pearson", Country: "United States", City: "Iowa City", Location: at(41.66, -91.53)},
	{Weight: 1, Institution: "Rutgers University", Country: "United States", City: "New Brunswick", Location: at(40.50, -74.45)},
	{Weight: 1, Institution: "Texas State University", Country: "United States", City: "San Marcos", Location: at(29.89, -97.94)},
	{Weight: 2, Institution: "Georgetown University", Country: "United States", City: "Washington, DC", Location: at(38.91, -77.07)},
	{Weight: 2, Institution: "University of Illinois at Chicago", Country: "United States", City: "Chicago", Location: at(41.87, -87.65)},
	{Weight: 1, Institution: "Washington State University", Country: "United States", City: "Pullman", Location: at(46.73, -117.16)},
	{Weight: 1, Institution: "Florida Atlantic University", Country: "United States", City: "Boca Raton", Location: at(26.37, -80.10)},
}

// Dataset returns a fresh copy of the built-in dataset, callers may modify it.
func Dataset() *model.Dataset {
	records := make([]model.CollaborationRecord, len(collaborations))
	copy(records, collaborations)
	return &model.Dataset{Center: center, Collaborations: records}
}

// DB serves the built-in dataset.
type DB struct{}

func New() *DB {
	return &DB{}
}

func (*DB) Dataset(ctx context.Context) (*model.Dataset, error) {
	return Dataset(), nil
}
