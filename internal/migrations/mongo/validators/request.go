package validators

import "go.mongodb.org/mongo-driver/bson"

var PendingEventRequestValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"title",
			"type",
			"start_time",
			"end_time",
			"requested_by",
			"requested_resource_ids",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},

			"type": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"start_time": bson.M{
				"bsonType": "date",
			},

			"end_time": bson.M{
				"bsonType": "date",
			},

			"requested_by": bson.M{
				"bsonType": "string",
			},

			"requested_resource_ids": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"status": bson.M{
				"enum": []string{"pending", "approved", "rejected"},
			},

			"reviewed_by": bson.M{
				"bsonType": "string",
			},

			"rejection_reason": bson.M{
				"bsonType": "string",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"reviewed_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var DeletionRequestValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"event_id",
			"requested_by",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"event_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"requested_by": bson.M{
				"bsonType": "string",
			},

			"status": bson.M{
				"enum": []string{"pending", "approved", "rejected"},
			},

			"reviewed_by": bson.M{
				"bsonType": "string",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"reviewed_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
