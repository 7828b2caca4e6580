package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"go.trai.ch/zerr"
)

// Result is a parsed job result. Exactly the field matching Kind is set.
type Result struct {
	Kind          JobKind
	Matching      *MatchingResult
	Cross         *CrossCompareResult
	Blocks        *UniqueBlocksResult
	AddedSampleID int
}

// ParseResult decodes a raw result payload according to the kind of its job.
func ParseResult(job *JobInfo, payload []byte) (*Result, error) {
	res := &Result{Kind: job.Kind}
	var err error
	switch {
	case job.Kind.IsMatching():
		res.Matching, err = ParseMatchingResult(payload)
	case job.Kind == KindCrossCompare:
		res.Cross, err = ParseCrossCompare(payload)
	case job.Kind == KindUniqueBlocks:
		res.Blocks, err = ParseUniqueBlocks(payload, job.Payload)
	case job.Kind == KindAddSample:
		res.AddedSampleID, err = ParseAddedSample(payload)
	case job.Kind == KindUpdateMinHashes || job.Kind == KindUpdateMinHashesForSample:
		return nil, zerr.With(zerr.Wrap(ErrUnimplemented, "no view for job kind"), "kind", job.Kind.String())
	default:
		return nil, zerr.With(zerr.Wrap(ErrUnknownJobKind, "cannot parse result"), "parameters", job.Parameters)
	}
	if err != nil {
		return nil, zerr.With(err, "job_id", job.ID)
	}
	return res, nil
}

type matchingPayload struct {
	Info *struct {
		Sample Sample `json:"sample"`
	} `json:"info"`
	Matches *struct {
		Samples   []SampleMatch   `json:"samples"`
		Functions []FunctionMatch `json:"functions"`
	} `json:"matches"`
}

// ParseMatchingResult decodes the payload of a matching job.
func ParseMatchingResult(payload []byte) (*MatchingResult, error) {
	var p matchingPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, unrecognized(err, "matching result is not valid JSON")
	}
	if p.Info == nil || p.Matches == nil {
		return nil, zerr.Wrap(ErrUnrecognizedPayload, "matching result lacks info or matches")
	}
	return NewMatchingResult(p.Info.Sample, p.Matches.Samples, p.Matches.Functions), nil
}

type crossMethodPayload struct {
	ClusteredSequence []FlexibleID `json:"clustered_sequence"`
	MatchingMatches   ScoreMatrix  `json:"matching_matches"`
	MatchingPercent   ScoreMatrix  `json:"matching_percent"`
}

// ParseCrossCompare decodes a cross compare payload, keeping the method order of the document.
func ParseCrossCompare(payload []byte) (*CrossCompareResult, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, unrecognized(err, "cross compare result is not an object")
	}

	result := &CrossCompareResult{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, unrecognized(err, "malformed cross compare result")
		}
		name, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, unrecognized(err, "malformed cross compare method")
		}
		if len(raw) == 0 || raw[0] != '{' {
			return nil, zerr.With(zerr.Wrap(ErrUnrecognizedPayload, "cross compare method is not an object"), "method", name)
		}
		var m crossMethodPayload
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, zerr.With(unrecognized(err, "malformed cross compare method"), "method", name)
		}

		method := CrossCompareMethod{
			Name:            name,
			MatchingMatches: m.MatchingMatches,
			MatchingPercent: m.MatchingPercent,
		}
		for _, id := range m.ClusteredSequence {
			method.ClusteredSequence = append(method.ClusteredSequence, int(id))
		}
		result.Methods = append(result.Methods, method)
	}

	if len(result.Methods) == 0 {
		return nil, zerr.Wrap(ErrUnrecognizedPayload, "cross compare result has no methods")
	}
	return result, nil
}

type blockPayload struct {
	Score           int           `json:"score"`
	Length          int           `json:"length"`
	Instructions    []Instruction `json:"instructions"`
	EscapedSequence string        `json:"escaped_sequence"`
}

type blockParams struct {
	SampleIDs []int `json:"0"`
	FamilyID  *int  `json:"family_id"`
}

// ParseUniqueBlocks decodes a unique blocks payload. The job payload carries the
// sample and family the blocks were computed for as a JSON encoded "params" entry.
func ParseUniqueBlocks(payload []byte, jobPayload map[string]any) (*UniqueBlocksResult, error) {
	result := &UniqueBlocksResult{}

	if raw, ok := jobPayload["params"].(string); ok && raw != "" {
		var params blockParams
		if err := json.Unmarshal([]byte(raw), &params); err != nil {
			return nil, unrecognized(err, "malformed unique blocks job parameters")
		}
		result.SampleIDs = params.SampleIDs
		result.FamilyID = params.FamilyID
	}

	if bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return result, nil
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, unrecognized(err, "unique blocks result is not an object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, unrecognized(err, "malformed unique blocks result")
		}
		hash, _ := tok.(string)

		var b blockPayload
		if err := dec.Decode(&b); err != nil {
			return nil, zerr.With(unrecognized(err, "malformed unique block"), "picblockhash", hash)
		}
		result.Blocks = append(result.Blocks, UniqueBlock{
			Hash:            hash,
			Score:           b.Score,
			Length:          b.Length,
			Instructions:    b.Instructions,
			EscapedSequence: b.EscapedSequence,
		})
	}
	return result, nil
}

// ParseAddedSample extracts the id of a sample created by a submission job.
func ParseAddedSample(payload []byte) (int, error) {
	var p struct {
		SampleInfo *struct {
			SampleID *int `json:"sample_id"`
		} `json:"sample_info"`
	}
	if err := json.Unmarshal(payload, &p); err != nil {
		return 0, unrecognized(err, "submission result is not valid JSON")
	}
	if p.SampleInfo == nil || p.SampleInfo.SampleID == nil {
		return 0, zerr.Wrap(ErrUnrecognizedPayload, "submission result lacks sample_info.sample_id")
	}
	return *p.SampleInfo.SampleID, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return zerr.New("unexpected JSON token")
	}
	return nil
}

// unrecognized wraps a decode failure so that it matches ErrUnrecognizedPayload
// while keeping the decoder message.
func unrecognized(err error, msg string) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return zerr.With(zerr.Wrap(ErrUnrecognizedPayload, msg), "cause", err.Error())
}
