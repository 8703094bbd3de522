package assessment

// Likert bounds shared by both instruments.
const (
	MinAnswer = 1
	MaxAnswer = 5
)

// Domain is one of the four Ikigai domains.
type Domain string

const (
	DomainPassion    Domain = "passion"
	DomainMission    Domain = "mission"
	DomainProfession Domain = "profession"
	DomainVocation   Domain = "vocation"
)

// Domains is the fixed reporting order for Ikigai scores and insights.
var Domains = []Domain{DomainPassion, DomainMission, DomainProfession, DomainVocation}

// Dimension is one of the four MBTI axes.
type Dimension string

const (
	DimensionEI Dimension = "EI"
	DimensionSN Dimension = "SN"
	DimensionTF Dimension = "TF"
	DimensionJP Dimension = "JP"
)

// Dimensions is the fixed order in which type letters are assembled.
var Dimensions = []Dimension{DimensionEI, DimensionSN, DimensionTF, DimensionJP}

// IkigaiQuestion is an Ikigai catalog entry.
type IkigaiQuestion struct {
	ID     string `json:"id"`
	Domain Domain `json:"domain"`
	Text   string `json:"text"`
}

// MBTIQuestion is an MBTI catalog entry. Reverse items are phrased toward the
// low pole of their dimension and are inverted before aggregation.
type MBTIQuestion struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Dimension Dimension `json:"dimension"`
	Reverse   bool      `json:"reverse,omitempty"`
}

var ikigaiCatalog = []IkigaiQuestion{
	{ID: "p1", Domain: DomainPassion, Text: "I feel energized when working on activities I love"},
	{ID: "p2", Domain: DomainPassion, Text: "I often lose track of time doing things I enjoy"},
	{ID: "p3", Domain: DomainPassion, Text: "I would do certain activities even without payment"},
	{ID: "p4", Domain: DomainPassion, Text: "I feel excited talking about my hobbies and interests"},
	{ID: "p5", Domain: DomainPassion, Text: "I actively seek opportunities to engage in my interests"},

	{ID: "m1", Domain: DomainMission, Text: "I feel fulfilled when helping others or making a difference"},
	{ID: "m2", Domain: DomainMission, Text: "I have a strong sense of what the world needs"},
	{ID: "m3", Domain: DomainMission, Text: "I am motivated by causes greater than myself"},
	{ID: "m4", Domain: DomainMission, Text: "I want my work to have a positive impact on society"},
	{ID: "m5", Domain: DomainMission, Text: "I feel responsible for contributing to positive change"},

	{ID: "pr1", Domain: DomainProfession, Text: "I am skilled at activities that come naturally to me"},
	{ID: "pr2", Domain: DomainProfession, Text: "Others often compliment me on my abilities"},
	{ID: "pr3", Domain: DomainProfession, Text: "I can perform certain tasks better than most people"},
	{ID: "pr4", Domain: DomainProfession, Text: "I have developed expertise in specific areas"},
	{ID: "pr5", Domain: DomainProfession, Text: "I feel confident in my core competencies"},

	{ID: "v1", Domain: DomainVocation, Text: "I can earn money from my skills and knowledge"},
	{ID: "v2", Domain: DomainVocation, Text: "There is market demand for what I can offer"},
	{ID: "v3", Domain: DomainVocation, Text: "I can create sustainable income from my abilities"},
	{ID: "v4", Domain: DomainVocation, Text: "People are willing to pay for my expertise"},
	{ID: "v5", Domain: DomainVocation, Text: "I see clear career paths using my strengths"},
}

var mbtiCatalog = []MBTIQuestion{
	{ID: "ei1", Text: "I enjoy being the center of attention at parties", Dimension: DimensionEI},
	{ID: "ei2", Text: "I prefer working alone rather than in groups", Dimension: DimensionEI, Reverse: true},
	{ID: "ei3", Text: "I feel energized after social gatherings", Dimension: DimensionEI},
	{ID: "ei4", Text: "I need quiet time to recharge after being around people", Dimension: DimensionEI, Reverse: true},
	{ID: "ei5", Text: "I easily start conversations with strangers", Dimension: DimensionEI},

	{ID: "sn1", Text: "I focus on concrete facts rather than possibilities", Dimension: DimensionSN, Reverse: true},
	{ID: "sn2", Text: "I enjoy exploring new ideas and concepts", Dimension: DimensionSN},
	{ID: "sn3", Text: "I prefer practical solutions over theoretical ones", Dimension: DimensionSN, Reverse: true},
	{ID: "sn4", Text: "I like to think about future possibilities", Dimension: DimensionSN},
	{ID: "sn5", Text: "I trust my instincts more than detailed analysis", Dimension: DimensionSN},

	{ID: "tf1", Text: "I make decisions based on logic rather than emotions", Dimension: DimensionTF, Reverse: true},
	{ID: "tf2", Text: "I consider how decisions affect people's feelings", Dimension: DimensionTF},
	{ID: "tf3", Text: "I value harmony in relationships over being right", Dimension: DimensionTF},
	{ID: "tf4", Text: "I prefer objective analysis when solving problems", Dimension: DimensionTF, Reverse: true},
	{ID: "tf5", Text: "I am sensitive to others' emotional needs", Dimension: DimensionTF},

	{ID: "jp1", Text: "I prefer to have a clear plan before starting projects", Dimension: DimensionJP, Reverse: true},
	{ID: "jp2", Text: "I enjoy keeping my options open", Dimension: DimensionJP},
	{ID: "jp3", Text: "I like to complete tasks well before deadlines", Dimension: DimensionJP, Reverse: true},
	{ID: "jp4", Text: "I adapt easily to unexpected changes", Dimension: DimensionJP},
	{ID: "jp5", Text: "I prefer structure and organization in my life", Dimension: DimensionJP, Reverse: true},
}

var (
	ikigaiByID = indexIkigai(ikigaiCatalog)
	mbtiByID   = indexMBTI(mbtiCatalog)
)

func indexIkigai(qs []IkigaiQuestion) map[string]IkigaiQuestion {
	m := make(map[string]IkigaiQuestion, len(qs))
	for _, q := range qs {
		m[q.ID] = q
	}
	return m
}

func indexMBTI(qs []MBTIQuestion) map[string]MBTIQuestion {
	m := make(map[string]MBTIQuestion, len(qs))
	for _, q := range qs {
		m[q.ID] = q
	}
	return m
}

// IkigaiQuestions returns a copy of the Ikigai catalog in presentation order.
func IkigaiQuestions() []IkigaiQuestion {
	out := make([]IkigaiQuestion, len(ikigaiCatalog))
	copy(out, ikigaiCatalog)
	return out
}

// MBTIQuestions returns a copy of the MBTI catalog in presentation order.
func MBTIQuestions() []MBTIQuestion {
	out := make([]MBTIQuestion, len(mbtiCatalog))
	copy(out, mbtiCatalog)
	return out
}

// LookupIkigai returns the Ikigai question with the given id.
func LookupIkigai(id string) (IkigaiQuestion, bool) {
	q, ok := ikigaiByID[id]
	return q, ok
}

// LookupMBTI returns the MBTI question with the given id.
func LookupMBTI(id string) (MBTIQuestion, bool) {
	q, ok := mbtiByID[id]
	return q, ok
}
