package match

// FileOutcome is the result of one isolated per-file attempt.
//
// Exactly one of the two variants holds: Err == nil means the file's
// batch was committed and Rows records how many records were presented
// to the store; Err != nil means the attempt failed as a unit and the
// canonical store is unchanged for this file (Rows is 0).
type FileOutcome struct {
	FileName string `json:"file_name"`
	Rows     int64  `json:"rows"`
	Err      error  `json:"-"`
}

// Success builds a successful outcome for a file.
func Success(fileName string, rows int64) FileOutcome {
	return FileOutcome{FileName: fileName, Rows: rows}
}

// Failure builds a failed outcome for a file.
func Failure(fileName string, err error) FileOutcome {
	return FileOutcome{FileName: fileName, Err: err}
}

// Succeeded reports whether the attempt committed.
func (o FileOutcome) Succeeded() bool {
	return o.Err == nil
}

// AuditStatus serializes the outcome to the legacy audit string format.
// This is the only place the tagged variant becomes a status string.
func (o FileOutcome) AuditStatus() string {
	if o.Err == nil {
		return StatusSuccess
	}
	return StatusErrorPrefix + o.Err.Error()
}
