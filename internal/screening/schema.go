package screening

import "veridical/pkg/schema"

// Output safety net: responses are re-validated against this before writing.
var resultSchema = schema.MustCompile("screening_result", `{
  "type": "object",
  "required": ["entityId", "risk_score", "risk_level", "factors", "matches", "confidence", "freshness"],
  "properties": {
    "entityId": {"type": "string", "minLength": 1},
    "risk_score": {"type": "number", "minimum": 0, "maximum": 100},
    "risk_level": {"enum": ["low", "medium", "high", "critical"]},
    "factors": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "score", "weight"],
        "properties": {
          "name": {"type": "string"},
          "score": {"type": "number", "minimum": 0, "maximum": 100},
          "weight": {"type": "number", "minimum": 0, "maximum": 1}
        }
      }
    },
    "matches": {
      "type": "array",
      "maxItems": 3,
      "items": {
        "type": "object",
        "required": ["list", "strength"],
        "properties": {
          "list": {"type": "string"},
          "strength": {"type": "number", "minimum": 0, "maximum": 1}
        }
      }
    },
    "confidence": {"type": "number", "minimum": 0, "maximum": 1},
    "freshness": {
      "type": "object",
      "required": ["timestamp", "age_seconds", "stale"],
      "properties": {
        "timestamp": {"type": "string"},
        "age_seconds": {"type": "integer", "minimum": 0},
        "stale": {"type": "boolean"}
      }
    }
  }
}`)
