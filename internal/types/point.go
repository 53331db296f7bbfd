// README: Geographic coordinate value object.
package types

import "fmt"

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p Point) String() string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lng)
}
