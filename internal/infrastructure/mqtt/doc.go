// Package mqtt publishes plant events to an MQTT broker.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Event publishing with QoS and payload-size checks
//   - Last Will and Testament (LWT) on plantshop/system/status
//   - Connection health monitoring
//
// MQTT is optional. When mqtt.enabled is false, or the broker cannot be
// reached at startup, the service runs without it and plant events are
// only delivered over WebSocket.
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	topic := mqtt.Topics{}.PlantEvent(42, "created")
//	client.Publish(topic, payload, 1, false)
package mqtt
