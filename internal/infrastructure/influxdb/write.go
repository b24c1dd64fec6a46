package influxdb

import (
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// MeasurementPlantPrice is the measurement holding plant price history.
const MeasurementPlantPrice = "plant_price"

// WritePlantPrice records the current price of a plant.
//
// The point is tagged with plant_id and carries the price and the plant
// name as fields, so renames do not split the series. The write is
// non-blocking; points are batched and flushed asynchronously.
//
// Example:
//
//	client.WritePlantPrice(42, "Fern", 12.5)
//	// plant_price,plant_id=42 name="Fern",price=12.5
func (c *Client) WritePlantPrice(plantID int64, name string, price float64) {
	c.WritePoint(MeasurementPlantPrice,
		map[string]string{
			"plant_id": strconv.FormatInt(plantID, 10),
		},
		map[string]interface{}{
			"price": price,
			"name":  name,
		},
	)
}

// WritePoint writes a point with full control over tags and fields.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	c.WritePointWithTime(measurement, tags, fields, time.Now())
}

// WritePointWithTime writes a point with an explicit timestamp.
// It is a no-op when the client is not connected.
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	c.writeAPI.WritePoint(write.NewPoint(measurement, tags, fields, timestamp))
}
