package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile       = "file_path"
	FieldSheet      = "sheet"
	FieldContract   = "contract"
	FieldMerchant   = "merchant_id"
	FieldCustomer   = "customer"
	FieldRow        = "row"
	FieldCount      = "count"
	FieldWindow     = "window"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldOutputFile = "output_file"
)
