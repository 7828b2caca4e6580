// Package mcrit implements the MatchingClient port against the MCRIT REST API.
package mcrit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/zerr"
)

// TokenHeader carries the API token on every request.
const TokenHeader = "apitoken"

const statusSuccessful = "successful"

// Client implements ports.MatchingClient over HTTP.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Client for the configured server.
// A zero timeout leaves requests unbounded apart from the caller's context.
func NewClient(cfg domain.ServerConfig) *Client {
	return NewClientWithHTTP(cfg, &http.Client{Timeout: cfg.Timeout})
}

// NewClientWithHTTP creates a Client that sends its requests through httpClient.
func NewClientWithHTTP(cfg domain.ServerConfig, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		token:      cfg.Token,
		httpClient: httpClient,
	}
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// get performs a GET request and returns the data member of the response envelope.
func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrRemoteUnavailable, err.Error()), "path", path)
	}
	if c.token != "" {
		req.Header.Set(TokenHeader, c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrRemoteUnavailable, err.Error()), "path", path)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, notFound(path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := zerr.With(zerr.Wrap(domain.ErrRemoteUnavailable, "unexpected status"), "status_code", resp.StatusCode)
		return nil, zerr.With(apiErr, "path", path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrRemoteUnavailable, err.Error()), "path", path)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrRemoteUnavailable, "response is not a service envelope"), "path", path)
	}
	if env.Status != statusSuccessful {
		statusErr := zerr.With(zerr.Wrap(domain.ErrRemoteUnavailable, "request was not successful"), "status", env.Status)
		return nil, zerr.With(statusErr, "path", path)
	}
	return env.Data, nil
}

// getEntity fetches a single entity. A null data member means the id is unknown.
func (c *Client) getEntity(ctx context.Context, path string, query url.Values, out any) error {
	data, err := c.get(ctx, path, query)
	if err != nil {
		return err
	}
	if isNull(data) {
		return notFound(path)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return malformed(err, path)
	}
	return nil
}

// GetJobData returns the job with the given id.
func (c *Client) GetJobData(ctx context.Context, jobID string) (*domain.JobInfo, error) {
	var dto jobDTO
	if err := c.getEntity(ctx, "/jobs/"+url.PathEscape(jobID), nil, &dto); err != nil {
		return nil, zerr.With(err, "job_id", jobID)
	}
	job, err := dto.toDomain()
	if err != nil {
		return nil, zerr.With(err, "job_id", jobID)
	}
	return job, nil
}

// GetResultForJob returns the raw result payload of a finished job.
func (c *Client) GetResultForJob(ctx context.Context, jobID string) ([]byte, error) {
	path := "/jobs/" + url.PathEscape(jobID) + "/result"
	data, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, zerr.With(err, "job_id", jobID)
	}
	if isNull(data) {
		return nil, zerr.With(notFound(path), "job_id", jobID)
	}
	return data, nil
}

// GetQueueData returns a window of the job queue, newest first. Zero start and
// limit leave the window to the service.
func (c *Client) GetQueueData(ctx context.Context, query domain.QueueQuery) ([]domain.JobInfo, error) {
	values := url.Values{}
	if query.Start > 0 {
		values.Set("start", strconv.Itoa(query.Start))
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Filter != "" {
		values.Set("filter", query.Filter)
	}

	data, err := c.get(ctx, "/jobs", values)
	if err != nil {
		return nil, err
	}
	dtos, err := decodeCollection[jobDTO](data)
	if err != nil {
		return nil, malformed(err, "/jobs")
	}

	jobs := make([]domain.JobInfo, 0, len(dtos))
	for _, dto := range dtos {
		job, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, nil
}

// GetJobCount returns the number of jobs whose parameters contain filter.
func (c *Client) GetJobCount(ctx context.Context, filter string) (int, error) {
	values := url.Values{}
	if filter != "" {
		values.Set("filter", filter)
	}
	var count int
	if err := c.getEntity(ctx, "/jobs/count", values, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// SearchFamilies runs a cursor paginated family search.
func (c *Client) SearchFamilies(ctx context.Context, query string, params domain.SearchParams) (*domain.SearchResult[domain.Family], error) {
	return search[domain.Family](ctx, c, "families", query, params)
}

// SearchSamples runs a cursor paginated sample search.
func (c *Client) SearchSamples(ctx context.Context, query string, params domain.SearchParams) (*domain.SearchResult[domain.Sample], error) {
	return search[domain.Sample](ctx, c, "samples", query, params)
}

// SearchFunctions runs a cursor paginated function search.
func (c *Client) SearchFunctions(ctx context.Context, query string, params domain.SearchParams) (*domain.SearchResult[domain.Function], error) {
	return search[domain.Function](ctx, c, "functions", query, params)
}

func search[T any](ctx context.Context, c *Client, collection, query string, params domain.SearchParams) (*domain.SearchResult[T], error) {
	values := url.Values{}
	values.Set("query", query)
	if params.Cursor != "" {
		values.Set("cursor", params.Cursor)
	}
	if params.SortBy != "" {
		values.Set("sort_by", params.SortBy)
	}
	values.Set("is_ascending", strconv.FormatBool(params.Ascending))
	if params.Limit > 0 {
		values.Set("limit", strconv.Itoa(params.Limit))
	}

	path := "/search/" + collection
	data, err := c.get(ctx, path, values)
	if err != nil {
		return nil, zerr.With(err, "query", query)
	}
	result, err := decodeSearch[T](data)
	if err != nil {
		return nil, zerr.With(malformed(err, path), "query", query)
	}
	return result, nil
}

// GetFamily returns the family without its samples.
func (c *Client) GetFamily(ctx context.Context, familyID int) (*domain.Family, error) {
	values := url.Values{}
	values.Set("with_samples", "false")
	var family domain.Family
	if err := c.getEntity(ctx, "/families/"+strconv.Itoa(familyID), values, &family); err != nil {
		return nil, zerr.With(err, "family_id", familyID)
	}
	return &family, nil
}

// GetSampleByID returns the sample with the given id. Query samples have negative ids.
func (c *Client) GetSampleByID(ctx context.Context, sampleID int) (*domain.Sample, error) {
	var sample domain.Sample
	if err := c.getEntity(ctx, "/samples/"+strconv.Itoa(sampleID), nil, &sample); err != nil {
		return nil, zerr.With(err, "sample_id", sampleID)
	}
	return &sample, nil
}

// GetSamplesByFamilyID returns all samples of a family.
func (c *Client) GetSamplesByFamilyID(ctx context.Context, familyID int) ([]domain.Sample, error) {
	path := "/families/" + strconv.Itoa(familyID) + "/samples"
	data, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, zerr.With(err, "family_id", familyID)
	}
	if isNull(data) {
		return nil, zerr.With(notFound(path), "family_id", familyID)
	}
	samples, err := decodeCollection[domain.Sample](data)
	if err != nil {
		return nil, zerr.With(malformed(err, path), "family_id", familyID)
	}
	return samples, nil
}

// GetFunctionByID returns a function, optionally with its control flow graph.
func (c *Client) GetFunctionByID(ctx context.Context, functionID int, withXCFG bool) (*domain.Function, error) {
	values := url.Values{}
	values.Set("with_xcfg", strconv.FormatBool(withXCFG))
	var function domain.Function
	if err := c.getEntity(ctx, "/functions/"+strconv.Itoa(functionID), values, &function); err != nil {
		return nil, zerr.With(err, "function_id", functionID)
	}
	return &function, nil
}

// GetMatchesForPicHash summarizes where a pichash occurs.
func (c *Client) GetMatchesForPicHash(ctx context.Context, picHash uint64) (*domain.PicHashSummary, error) {
	return c.hashSummary(ctx, "pichash", picHash)
}

// GetMatchesForPicBlockHash summarizes where a picblockhash occurs.
func (c *Client) GetMatchesForPicBlockHash(ctx context.Context, picBlockHash uint64) (*domain.PicHashSummary, error) {
	return c.hashSummary(ctx, "picblockhash", picBlockHash)
}

func (c *Client) hashSummary(ctx context.Context, kind string, hash uint64) (*domain.PicHashSummary, error) {
	hexHash := strconv.FormatUint(hash, 16)
	var summary domain.PicHashSummary
	if err := c.getEntity(ctx, "/query/"+kind+"/"+hexHash+"/summary", nil, &summary); err != nil {
		return nil, zerr.With(err, kind, hexHash)
	}
	return &summary, nil
}

// GetExportData returns the export document for the samples, or for all samples when ids is empty.
func (c *Client) GetExportData(ctx context.Context, sampleIDs []int) ([]byte, error) {
	path := "/export"
	if len(sampleIDs) > 0 {
		ids := make([]string, len(sampleIDs))
		for i, id := range sampleIDs {
			ids[i] = strconv.Itoa(id)
		}
		path += "/" + strings.Join(ids, ",")
	}
	data, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	if isNull(data) {
		return nil, notFound(path)
	}
	return data, nil
}

func notFound(path string) error {
	return zerr.With(zerr.Wrap(domain.ErrNotFound, "unknown id"), "path", path)
}

func malformed(err error, path string) error {
	return zerr.With(zerr.With(zerr.Wrap(domain.ErrRemoteUnavailable, "malformed response data"), "cause", err.Error()), "path", path)
}
