// Package api implements the HTTP REST API and WebSocket server for Plant Shop Core.
//
// The server follows the same lifecycle pattern as other infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// # Routes
//
//	GET    /plants        list every plant, ordered by id
//	POST   /plants        create a plant (201)
//	GET    /plants/{id}   fetch one plant
//	PUT    /plants/{id}   overwrite name, image and price
//	DELETE /plants/{id}   remove a plant
//	GET    /health        liveness plus store probe
//	GET    /metrics       runtime and pool statistics
//	GET    /ws            WebSocket plant event feed
//
// Every error body is {"error": "<message>"}. Unknown routes answer 404 and
// known routes with the wrong method answer 405, both in the same shape.
//
// # Events
//
// Each successful create, update or delete is broadcast on the WebSocket
// channels plant.created, plant.updated and plant.deleted, published to
// MQTT at plantshop/core/plant/{id}/{action} when a broker is configured,
// and, for creates and updates, recorded as a plant_price point in InfluxDB.
// Fan-out failures are logged and never change the HTTP response.
//
// # Graceful Degradation
//
// MQTT and InfluxDB are optional. Without them the REST API and the
// WebSocket feed work unchanged.
package api
