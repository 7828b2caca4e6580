package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.trai.ch/zerr"
)

// MaxBlockLength is the upper length bound applied when only a lower bound is given.
const MaxBlockLength = 0xFFFFFFFF

// signatureWrap is the width after which the escaped byte sequence is broken.
const signatureWrap = 80

// Instruction is one disassembled instruction of a unique block.
type Instruction struct {
	Offset   uint64
	Bytes    string
	Mnemonic string
	Operands string
}

// UnmarshalJSON decodes the positional [offset, bytes, mnemonic, operands] form.
func (i *Instruction) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return zerr.Wrap(err, "instruction is not an array")
	}
	if len(raw) < 4 {
		return zerr.With(zerr.New("instruction has too few fields"), "fields", len(raw))
	}
	if err := json.Unmarshal(raw[0], &i.Offset); err != nil {
		return zerr.Wrap(err, "instruction offset")
	}
	for idx, dst := range []*string{&i.Bytes, &i.Mnemonic, &i.Operands} {
		if err := json.Unmarshal(raw[idx+1], dst); err != nil {
			return zerr.With(zerr.Wrap(err, "instruction field"), "index", idx+1)
		}
	}
	return nil
}

// MarshalJSON encodes the instruction in its positional form.
func (i Instruction) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{i.Offset, i.Bytes, i.Mnemonic, i.Operands})
}

// UniqueBlock is a basic block that only occurs in the analyzed sample or family.
type UniqueBlock struct {
	Hash            string        `json:"hash"`
	Score           int           `json:"score"`
	Length          int           `json:"length"`
	Instructions    []Instruction `json:"instructions"`
	EscapedSequence string        `json:"escaped_sequence"`
	Signature       string        `json:"signature,omitempty"`
}

// BlockFilter holds the optional thresholds of a unique block listing. Nil means the
// bound was not given.
type BlockFilter struct {
	MinScore  *int
	MinLength *int
	MaxLength *int
}

// IsZero reports whether no threshold was given.
func (f BlockFilter) IsZero() bool {
	return f.MinScore == nil && f.MinLength == nil && f.MaxLength == nil
}

// FilterBlocks applies the score threshold, then the length range, and orders the
// survivors by score descending with ties broken by hash.
//
// The length range applies once either bound is given and non-zero. A missing lower
// bound is 0 and a missing upper bound is MaxBlockLength, while a given 0 is kept.
func FilterBlocks(blocks []UniqueBlock, f BlockFilter) []UniqueBlock {
	out := make([]UniqueBlock, 0, len(blocks))
	for _, b := range blocks {
		if nonZero(f.MinScore) && b.Score < *f.MinScore {
			continue
		}
		out = append(out, b)
	}

	if nonZero(f.MinLength) || nonZero(f.MaxLength) {
		minLength, maxLength := 0, MaxBlockLength
		if f.MinLength != nil {
			minLength = *f.MinLength
		}
		if f.MaxLength != nil {
			maxLength = *f.MaxLength
		}
		out = filter(out, func(b UniqueBlock) bool {
			return b.Length >= minLength && b.Length <= maxLength
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Hash < out[j].Hash
	})
	return out
}

func nonZero(n *int) bool {
	return n != nil && *n != 0
}

// RenderSignature formats a block as a commented YARA-style byte pattern.
func RenderSignature(b UniqueBlock) string {
	width := 0
	for _, ins := range b.Instructions {
		if len(ins.Bytes) > width {
			width = len(ins.Bytes)
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "/* picblockhash: %s \n", b.Hash)
	for _, ins := range b.Instructions {
		fmt.Fprintf(&sb, " * %-*s | %s %s\n", width, ins.Bytes, ins.Mnemonic, ins.Operands)
	}
	sb.WriteString(" */\n")
	sb.WriteString("{ ")
	sb.WriteString(wrapEvery(b.EscapedSequence, signatureWrap))
	sb.WriteString(" }")
	return sb.String()
}

// wrapEvery inserts a newline after every complete run of n characters.
func wrapEvery(s string, n int) string {
	runes := []rune(s)
	var sb strings.Builder
	sb.Grow(len(s) + len(runes)/n)
	for i := 0; i+n <= len(runes); i += n {
		sb.WriteString(string(runes[i : i+n]))
		sb.WriteByte('\n')
	}
	sb.WriteString(string(runes[len(runes)-len(runes)%n:]))
	return sb.String()
}

// UniqueBlocksResult is the parsed result of a unique blocks job.
type UniqueBlocksResult struct {
	SampleIDs []int
	FamilyID  *int
	Blocks    []UniqueBlock
}
