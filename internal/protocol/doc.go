// Package protocol implements the sequence inference request format on
// top of the generated wire types. It handles composite request ids,
// sequence control parameters (sequence_id, sequence_start,
// sequence_end) and request validation for the sequence models.
package protocol
