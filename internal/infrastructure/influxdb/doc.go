// Package influxdb records plant price history in InfluxDB.
//
// Every create and update of a plant writes one plant_price point tagged
// with the plant ID. The package wraps the official influxdb-client-go v2
// library with connection management and health monitoring.
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WritePlantPrice(42, "Fern", 12.5)
//
// # Error Handling
//
// Writes are non-blocking and batched (batch_size, flush_interval in
// config.yaml). Batch failures are delivered to the SetOnError callback.
// Connection and health check errors are returned directly.
package influxdb
