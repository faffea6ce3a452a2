package config

// configSchema is the JSON Schema for twgroup.json.
const configSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "version": {
      "type": "string",
      "format": "semver"
    },
    "extensions": {
      "type": "array",
      "minItems": 1,
      "uniqueItems": true,
      "items": {
        "type": "string",
        "pattern": "^\\.[A-Za-z0-9.]+$"
      }
    },
    "dialects": {
      "type": "array",
      "minItems": 1,
      "uniqueItems": true,
      "items": {
        "type": "string",
        "minLength": 1
      }
    },
    "strict": {
      "type": "boolean"
    }
  }
}`
