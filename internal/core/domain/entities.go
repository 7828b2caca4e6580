package domain

// Family is a named group of samples.
type Family struct {
	ID          int    `json:"family_id"`
	Name        string `json:"family_name"`
	NumSamples  int    `json:"num_samples"`
	IsLibrary   bool   `json:"is_library"`
	NumVersions int    `json:"num_versions"`
}

// Sample is a single analyzed binary.
type Sample struct {
	ID           int    `json:"sample_id"`
	FamilyID     int    `json:"family_id"`
	Family       string `json:"family"`
	Version      string `json:"version"`
	Filename     string `json:"filename"`
	SHA256       string `json:"sha256"`
	Bitness      int    `json:"bitness"`
	BaseAddr     uint64 `json:"base_addr"`
	IsLibrary    bool   `json:"is_library"`
	NumFunctions int    `json:"statistics_num_functions"`
}

// IsQuery reports whether the sample is a transient query sample rather than a stored one.
func (s Sample) IsQuery() bool {
	return s.ID < 0
}

// PicBlockHash maps a basic block offset to its position-independent hash.
type PicBlockHash struct {
	Offset uint64 `json:"offset"`
	Hash   uint64 `json:"hash"`
	Size   int    `json:"size"`
}

// Function is a single disassembled function.
type Function struct {
	ID             int            `json:"function_id"`
	SampleID       int            `json:"sample_id"`
	FamilyID       int            `json:"family_id"`
	Name           string         `json:"function_name"`
	Offset         uint64         `json:"offset"`
	NumBlocks      int            `json:"num_blocks"`
	NumInstr       int            `json:"num_instructions"`
	PicHash        uint64         `json:"pichash"`
	PicBlockHashes []PicBlockHash `json:"picblockhashes,omitempty"`
	XCFG           map[string]any `json:"xcfg,omitempty"`
}

// PicHashSummary aggregates how widely a pichash or picblockhash occurs in the corpus.
type PicHashSummary struct {
	Families  int `json:"families"`
	Samples   int `json:"samples"`
	Functions int `json:"functions"`
}
