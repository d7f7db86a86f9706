package schema

import "github.com/hamba/avro/v2"

const ClientEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storeapi",
	"name": "client_event",
	"fields": [
		{"name": "username", "type": "string"},
		{"name": "event", "type": "string"},
		{"name": "product_id", "type": "long"},
		{"name": "filter", "type": "string"}
	]
}`

// ClientEventV1 is the wire form of one client activity record.
type ClientEventV1 struct {
	Username  string `avro:"username"`
	Event     string `avro:"event"`
	ProductID int64  `avro:"product_id"`
	Filter    string `avro:"filter"`
}

// ClientEventV1Avro parses the schema text. Panics on a broken constant;
// callers treat that as a develop mistake.
func ClientEventV1Avro() avro.Schema {
	return avro.MustParse(ClientEventSchemaTextV1)
}
