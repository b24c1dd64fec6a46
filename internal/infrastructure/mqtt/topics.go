package mqtt

import "fmt"

// Topic prefixes for everything Plant Shop Core publishes.
const (
	// TopicPrefixCore is the base for events emitted by the core service.
	TopicPrefixCore = "plantshop/core"

	// TopicPrefixSystem is the base for service status topics.
	TopicPrefixSystem = "plantshop/system"
)

// Topics provides builders for Plant Shop MQTT topics.
//
//	topic := mqtt.Topics{}.PlantEvent(42, "updated")
//	// Returns: "plantshop/core/plant/42/updated"
type Topics struct{}

// PlantEvent returns the topic for a plant lifecycle event.
//
// Example: plantshop/core/plant/42/created
func (Topics) PlantEvent(plantID int64, action string) string {
	return fmt.Sprintf("%s/plant/%d/%s", TopicPrefixCore, plantID, action)
}

// SystemStatus returns the retained online/offline status topic.
//
// Example: plantshop/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}

// AllPlantEvents returns a pattern matching every plant event.
//
// Pattern: plantshop/core/plant/+/+
func (Topics) AllPlantEvents() string {
	return TopicPrefixCore + "/plant/+/+"
}
