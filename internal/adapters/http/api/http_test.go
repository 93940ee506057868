package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/serene/internal/adapters/http/api"
	service "github.com/okian/serene/internal/app"
	"github.com/okian/serene/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeService is a canned Dependencies/StatsProvider implementation so
// handler tests stay independent of the real service wiring.
type fakeService struct {
	assessment   model.Assessment
	recs         []model.Recommendation
	fallback     bool
	recommendErr error

	feedbackID  string
	duplicate   bool
	feedbackErr error
	lastEvent   model.FeedbackEvent

	entries []model.CatalogEntry
	topErr  error
	topN    int
}

func (f *fakeService) AnalyzeMentalState(_ context.Context, _ string) model.Assessment {
	return f.assessment
}

func (f *fakeService) Recommend(_ context.Context, _, _ string, _ int) (model.Assessment, []model.Recommendation, bool, error) {
	return f.assessment, f.recs, f.fallback, f.recommendErr
}

func (f *fakeService) RecordFeedback(_ context.Context, e model.FeedbackEvent) (string, bool, error) {
	f.lastEvent = e
	return f.feedbackID, f.duplicate, f.feedbackErr
}

func (f *fakeService) TopEffective(_ context.Context, n int) ([]model.CatalogEntry, error) {
	f.topN = n
	return f.entries, f.topErr
}

func (f *fakeService) GetStats(context.Context) map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newTestServer(f *fakeService) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(f, f, 20).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func post(ts *httptest.Server, path, body string) (*http.Response, error) {
	return http.Post(ts.URL+path, "application/json", strings.NewReader(body))
}

func TestHealthAndStats(t *testing.T) {
	Convey("Given the API server", t, func() {
		ts := newTestServer(&fakeService{})
		Reset(ts.Close)

		Convey("When probing the health endpoint", func() {
			resp, err := http.Get(ts.URL + "/healthz")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then it should report ok", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var body map[string]string
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body["status"], ShouldEqual, "ok")
			})
		})

		Convey("When fetching stats", func() {
			resp, err := http.Get(ts.URL + "/stats")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the provider's view should come back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var body map[string]interface{}
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body["started"], ShouldEqual, true)
			})
		})

		Convey("When using the wrong method", func() {
			resp, err := post(ts, "/healthz", "")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the route should 404", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestAnalyzeEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		fake := &fakeService{
			assessment: model.Assessment{
				PrimaryConcern: model.CategoryAnxiety,
				SeverityScore:  0.42,
				Urgency:        model.UrgencyMedium,
			},
		}
		ts := newTestServer(fake)
		Reset(ts.Close)

		Convey("When posting text for analysis", func() {
			resp, err := post(ts, "/analyze", `{"text":"I feel anxious"}`)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the full assessment should come back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var a model.Assessment
				So(json.NewDecoder(resp.Body).Decode(&a), ShouldBeNil)
				So(a.PrimaryConcern, ShouldEqual, model.CategoryAnxiety)
				So(a.SeverityScore, ShouldEqual, 0.42)
			})
		})

		Convey("When the body is not JSON", func() {
			resp, err := post(ts, "/analyze", "{")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the text is blank", func() {
			resp, err := post(ts, "/analyze", `{"text":"   "}`)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestRecommendationsEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		fake := &fakeService{
			assessment: model.Assessment{
				PrimaryConcern: model.CategoryStress,
				SeverityScore:  0.3,
				Urgency:        model.UrgencyLow,
			},
			recs: []model.Recommendation{
				{Entry: model.CatalogEntry{ID: "med-001"}, TotalScore: 0.9},
			},
		}
		ts := newTestServer(fake)
		Reset(ts.Close)

		Convey("When requesting recommendations", func() {
			resp, err := post(ts, "/recommendations", `{"user_id":"u1","text":"so stressed","limit":5}`)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the list and assessment summary should come back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var body struct {
					Assessment struct {
						PrimaryConcern string `json:"primary_concern"`
					} `json:"assessment"`
					Recommendations []model.Recommendation `json:"recommendations"`
					Fallback        bool                   `json:"fallback"`
				}
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body.Assessment.PrimaryConcern, ShouldEqual, "stress")
				So(body.Recommendations, ShouldHaveLength, 1)
				So(body.Fallback, ShouldBeFalse)
			})
		})

		Convey("When the user id is missing", func() {
			resp, err := post(ts, "/recommendations", `{"text":"hi"}`)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the limit exceeds the maximum", func() {
			resp, err := post(ts, "/recommendations", `{"user_id":"u1","text":"hi","limit":1000}`)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When no catalog exists at all", func() {
			fake.recommendErr = service.ErrEmptyCatalog

			resp, err := post(ts, "/recommendations", `{"user_id":"u1","text":"hi"}`)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the endpoint should be unavailable", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusServiceUnavailable)
				var body map[string]string
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body["code"], ShouldEqual, "empty_catalog")
			})
		})
	})
}

func TestFeedbackEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		fake := &fakeService{feedbackID: "evt-1"}
		ts := newTestServer(fake)
		Reset(ts.Close)

		Convey("When submitting valid feedback", func() {
			resp, err := post(ts, "/feedback", `{"user_id":"u1","meditation_id":"med-001","accepted":true,"rating":4}`)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then it should be accepted asynchronously", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusAccepted)
				var ack struct {
					EventID   string `json:"event_id"`
					Status    string `json:"status"`
					Duplicate bool   `json:"duplicate"`
				}
				So(json.NewDecoder(resp.Body).Decode(&ack), ShouldBeNil)
				So(ack.EventID, ShouldEqual, "evt-1")
				So(ack.Status, ShouldEqual, "accepted")
				So(fake.lastEvent.MeditationID, ShouldEqual, "med-001")
				So(fake.lastEvent.Rating, ShouldNotBeNil)
				So(*fake.lastEvent.Rating, ShouldEqual, 4.0)
			})
		})

		Convey("When the event is a duplicate", func() {
			fake.duplicate = true

			resp, err := post(ts, "/feedback", `{"event_id":"evt-1","user_id":"u1","meditation_id":"med-001"}`)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then it should be acknowledged, not re-accepted", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var ack struct {
					Status    string `json:"status"`
					Duplicate bool   `json:"duplicate"`
				}
				So(json.NewDecoder(resp.Body).Decode(&ack), ShouldBeNil)
				So(ack.Status, ShouldEqual, "duplicate")
				So(ack.Duplicate, ShouldBeTrue)
			})
		})

		Convey("When the queue is saturated", func() {
			fake.feedbackErr = service.ErrBackpressure

			resp, err := post(ts, "/feedback", `{"user_id":"u1","meditation_id":"med-001"}`)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusTooManyRequests)
		})

		Convey("When the rating is out of range", func() {
			resp, err := post(ts, "/feedback", `{"user_id":"u1","meditation_id":"med-001","rating":6}`)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the meditation id is missing", func() {
			resp, err := post(ts, "/feedback", `{"user_id":"u1"}`)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestCatalogEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		fake := &fakeService{
			entries: []model.CatalogEntry{
				{ID: "med-002", EffectivenessScore: 0.9},
				{ID: "med-001", EffectivenessScore: 0.8},
			},
		}
		ts := newTestServer(fake)
		Reset(ts.Close)

		Convey("When browsing without a limit", func() {
			resp, err := http.Get(ts.URL + "/catalog")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the server maximum should apply", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(fake.topN, ShouldEqual, 20)
				var entries []model.CatalogEntry
				So(json.NewDecoder(resp.Body).Decode(&entries), ShouldBeNil)
				So(entries, ShouldHaveLength, 2)
			})
		})

		Convey("When passing an explicit limit", func() {
			resp, err := http.Get(ts.URL + "/catalog?limit=5")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(fake.topN, ShouldEqual, 5)
		})

		Convey("When the limit is not a number", func() {
			resp, err := http.Get(ts.URL + "/catalog?limit=abc")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the limit exceeds the maximum", func() {
			resp, err := http.Get(ts.URL + "/catalog?limit=100")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}
