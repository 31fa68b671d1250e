package openedx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

// Endpoint templates for the Open edX REST APIs. Placeholders in braces are
// filled by the caller. For the full endpoint inventory see the edx-platform
// swagger definition.
const (
	URLLibPrefix     = "/api/libraries/v2/"
	URLLibCreate     = URLLibPrefix
	URLLibDetail     = URLLibPrefix + "{lib_key}/"
	URLLibBlockTypes = URLLibDetail + "block_types/"
	URLLibLinks      = URLLibDetail + "links/"
	URLLibLink       = URLLibDetail + "links/{link_id}/"
	URLLibCommit     = URLLibDetail + "commit/"
	URLLibBlocks     = URLLibDetail + "blocks/"
	URLLibBlock      = URLLibPrefix + "blocks/{block_key}/"
	URLLibBlockOLX   = URLLibBlock + "olx/"
	URLLibBlockAsset = URLLibBlock + "assets/{filename}"

	URLBlockBase          = "/api/xblock/v2/xblocks/{block_key}/"
	URLBlockMetadata      = URLBlockBase
	URLBlockRenderView    = URLBlockBase + "view/{view_name}/"
	URLBlockGetHandlerURL = URLBlockBase + "handler_url/{handler_name}/"

	URLPathwaysPrefix  = "/api/lx-pathways/v1/pathway/"
	URLPathwaysDetail  = URLPathwaysPrefix + "{pathway_key}/"
	URLPathwaysPublish = URLPathwaysPrefix + "{pathway_key}/publish/"

	URLModulestoreBlockOLX = "/api/olx-export/v1/xblock/{block_key}/"

	URLCoursesBase   = "/api/courses/v1/"
	URLCoursesList   = URLCoursesBase + "courses/"
	URLCoursesBlocks = URLCoursesBase + "blocks/"

	URLEnrollmentBase  = "/api/enrollment/v1/"
	URLEnrollmentRoles = URLEnrollmentBase + "roles/"

	URLBulkEnroll = "/api/bulk_enroll/v1/bulk_enroll/"
)

// ClientConfig configures a Client.
type ClientConfig struct {
	// BaseURL is the URL of the LMS, including the scheme.
	BaseURL string

	// ClientID and ClientSecret identify the OAuth2 client, created in
	// <lms base url>/admin/oauth2/client/.
	ClientID     string
	ClientSecret string

	// TokenType defaults to TokenTypeBearer for API access.
	TokenType TokenType

	// Timeout applies to token requests. OAuthURI optionally redirects the
	// token endpoint relative to BaseURL. Transport carries API requests.
	Timeout   Timeout
	OAuthURI  string
	Transport Doer
}

// Client accesses the Open edX REST API endpoints through an authenticated
// session.
//
// Usage:
//
//	client, err := openedx.NewClient(openedx.ClientConfig{
//		BaseURL:      "https://lms.example.com",
//		ClientID:     clientID,
//		ClientSecret: clientSecret,
//	})
//	courses, err := client.ListAllCourses(ctx, "")
type Client struct {
	baseURL string
	session *Session
}

// NewClient opens an authenticated session with the LMS. No token is fetched
// until the first call.
func NewClient(cfg ClientConfig) (*Client, error) {
	tokenType := cfg.TokenType
	if tokenType == "" {
		tokenType = TokenTypeBearer
	}

	session, err := NewSession(SessionConfig{
		BaseURL:      cfg.BaseURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenType:    tokenType,
		Timeout:      cfg.Timeout,
		OAuthURI:     cfg.OAuthURI,
		Transport:    cfg.Transport,
	})
	if err != nil {
		return nil, err
	}

	return &Client{baseURL: session.BaseURL(), session: session}, nil
}

// Session returns the underlying authenticated session, for endpoints this
// client does not cover.
func (c *Client) Session() *Session {
	return c.session
}

// ListAllCourses returns the full list of courses visible to the requesting
// user, walking every page of the courses v1 API. Pass org to filter by
// organization, or "" for all.
func (c *Client) ListAllCourses(ctx context.Context, org string) ([]Course, error) {
	pageURL := c.baseURL + URLCoursesList
	if org != "" {
		pageURL += "?" + url.Values{"org": {org}}.Encode()
	}

	var courses []Course
	for pageURL != "" {
		resp, err := c.session.Get(ctx, pageURL, nil)
		if err != nil {
			return nil, err
		}

		body, err := readSuccess(resp)
		if err != nil {
			return nil, err
		}

		page := gjson.ParseBytes(body)
		for _, result := range page.Get("results").Array() {
			var course Course
			if err := json.Unmarshal([]byte(result.Raw), &course); err != nil {
				return nil, fmt.Errorf("decoding course: %w", err)
			}
			courses = append(courses, course)
		}

		pageURL = page.Get("pagination.next").String()
	}

	return courses, nil
}

// ChangeEnrollment enrolls or unenrolls the given emails in the given
// courses through the bulk enrollment API.
func (c *Client) ChangeEnrollment(ctx context.Context, emails, courses []string, action EnrollmentAction, opts *EnrollmentOptions) (*BulkEnrollment, error) {
	if opts == nil {
		opts = &EnrollmentOptions{}
	}

	req := bulkEnrollRequest{
		AutoEnroll:    boolOrDefault(opts.AutoEnroll, true),
		EmailStudents: boolOrDefault(opts.EmailStudents, true),
		Action:        string(action),
		Courses:       strings.Join(courses, ","),
		Identifiers:   strings.Join(emails, ","),
		Cohorts:       strings.Join(opts.Cohorts, ","),
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding bulk enrollment request: %w", err)
	}

	base := c.baseURL
	if opts.URL != "" {
		base = strings.TrimSuffix(opts.URL, "/")
	}

	resp, err := c.session.Post(ctx, base+URLBulkEnroll, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	body, err := readSuccess(resp)
	if err != nil {
		return nil, err
	}

	var result BulkEnrollment
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding bulk enrollment response: %w", err)
	}
	return &result, nil
}

// readSuccess drains and closes the response body, returning it for 2xx
// responses and an *HTTPStatusError otherwise.
func readSuccess(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
