package engine

// Decision names the step (or terminal) a router resolves to.
type Decision string

// Router decisions.
const (
	DecideTopicSearch     Decision = "topic_search"
	DecideCompanyResearch Decision = "company_topic_research"
	DecideVideoAnalysis   Decision = "video_analysis"
	DecideSynthesis       Decision = "report_synthesis"
	DecidePodcast         Decision = "podcast_generation"
	DecideEnd             Decision = "end"
)

// Condition evaluates a routing predicate against run state.
type Condition func(st *RunState) bool

// Route pairs a named condition with the decision taken when it holds.
type Route struct {
	Name string
	When Condition
	Then Decision
}

// Router is an ordered decision table: routes are evaluated in order,
// first match wins, and the fallback applies when none match.
type Router struct {
	routes   []Route
	fallback Decision
}

// NewRouter builds a router from ordered routes and a fallback decision.
func NewRouter(routes []Route, fallback Decision) Router {
	return Router{routes: routes, fallback: fallback}
}

// Decide resolves the router against the given state.
func (r Router) Decide(st *RunState) Decision {
	for _, route := range r.routes {
		if route.When(st) {
			return route.Then
		}
	}
	return r.fallback
}

// PathRouter selects the research path from the requested approach.
func PathRouter() Router {
	return NewRouter([]Route{
		{
			Name: "company_approach",
			When: func(st *RunState) bool {
				return st.Input.Approach == ApproachCompanyLeads
			},
			Then: DecideCompanyResearch,
		},
	}, DecideTopicSearch)
}

// VideoRouter gates video analysis on the presence of a video URL.
func VideoRouter() Router {
	return NewRouter([]Route{
		{
			Name: "has_video_url",
			When: func(st *RunState) bool {
				return st.Input.VideoURL != ""
			},
			Then: DecideVideoAnalysis,
		},
	}, DecideSynthesis)
}

// PodcastRouter gates podcast generation on the request flag and on a
// successfully synthesized report.
func PodcastRouter() Router {
	return NewRouter([]Route{
		{
			Name: "podcast_requested",
			When: func(st *RunState) bool {
				return st.Input.CreatePodcast && st.Report != ""
			},
			Then: DecidePodcast,
		},
	}, DecideEnd)
}
