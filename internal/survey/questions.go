package survey

// Key identifies a question and the answer stored for it.
type Key string

const (
	KeyKnowledge  Key = "ai_knowledge"
	KeyJob        Key = "job"
	KeyInterest   Key = "tool_interest"
	KeyPurpose    Key = "specific_purpose"
	KeyDifficulty Key = "preferred_difficulty"
)

// OptionOther is accepted by the job, interest and purpose questions and maps to nothing.
const OptionOther = "기타"

// Self-reported AI knowledge levels, lowest first.
const (
	KnowledgeNone      = "전혀 모른다"
	KnowledgeNameOnly  = "이름만 들어봤다"
	KnowledgeBasics    = "기본 개념은 알고 있다"
	KnowledgePractical = "실제로 활용해본 경험이 있다"
	KnowledgeExpert    = "AI 모델이나 알고리즘을 직접 다뤄본 적 있다"
)

const (
	JobStudent    = "학생"
	JobDeveloper  = "개발자/IT 종사자"
	JobEducator   = "교육자/연구원"
	JobDesigner   = "디자이너/창작자"
	JobMarketer   = "마케터/홍보"
	JobOffice     = "사무직"
	JobManager    = "경영/관리자"
	JobFounder    = "창업가/프리랜서"
	JobMedical    = "의료/건강 종사자"
	JobLegalFinan = "법률/금융 전문가"
)

const (
	InterestText        = "텍스트 생성"
	InterestImage       = "이미지 생성"
	InterestVideoAudio  = "영상/음성 합성"
	InterestData        = "데이터 분석 및 시각화"
	InterestAutomation  = "업무 자동화"
	InterestSearch      = "검색 및 지식 관리"
	InterestCode        = "코드 생성 및 개발 지원"
	InterestTranslation = "번역 및 언어 학습"
)

const (
	PurposeDocuments  = "문서 작성 및 편집"
	PurposeMedia      = "이미지/영상 제작"
	PurposeData       = "데이터 분석"
	PurposeProgram    = "프로그래밍 및 개발"
	PurposeMarketing  = "마케팅 및 홍보"
	PurposeEducation  = "교육 및 학습"
	PurposeAutomation = "업무 자동화"
	PurposeSupport    = "고객 서비스"
	PurposeResearch   = "연구 및 논문 작성"
)

const (
	DifficultyEasy     = "쉬움 (초보자도 바로 사용 가능한 도구)"
	DifficultyMedium   = "중간 (기본적인 지식이 필요한 도구)"
	DifficultyHard     = "어려움 (전문적인 지식이 필요한 고급 도구)"
	DifficultyFeatures = "난이도보다는 기능 중심으로 선택하고 싶음"
)

// Question is one page of the questionnaire.
type Question struct {
	Key     Key      `json:"key"`
	Text    string   `json:"question"`
	Help    string   `json:"help,omitempty"`
	Options []string `json:"options"`
	Multi   bool     `json:"multi,omitempty"`
}

// HasOption reports whether value is one of the canonical options.
func (q Question) HasOption(value string) bool {
	for _, option := range q.Options {
		if option == value {
			return true
		}
	}
	return false
}

var questions = []Question{
	{
		Key:     KeyKnowledge,
		Text:    "현재 AI에 대해 얼마나 알고 계신가요?",
		Help:    "이 정보는 적절한 난이도의 도구를 추천하는 데 활용됩니다.",
		Options: []string{KnowledgeNone, KnowledgeNameOnly, KnowledgeBasics, KnowledgePractical, KnowledgeExpert},
	},
	{
		Key:  KeyJob,
		Text: "귀하의 직업 또는 현재 활동 분야는 무엇인가요?",
		Help: "직업 분야에 맞는 특화된 AI 도구를 추천해 드립니다.",
		Options: []string{
			JobStudent, JobDeveloper, JobEducator, JobDesigner, JobMarketer, JobOffice,
			JobManager, JobFounder, JobMedical, JobLegalFinan, OptionOther,
		},
	},
	{
		Key:  KeyInterest,
		Text: "어떤 종류의 AI 도구에 관심이 있으신가요? (여러 개 선택 가능)",
		Help: "관심 있는 도구 유형을 알려주시면 해당 카테고리의 도구를 우선적으로 추천해 드립니다.",
		Options: []string{
			InterestText, InterestImage, InterestVideoAudio, InterestData, InterestAutomation,
			InterestSearch, InterestCode, InterestTranslation, OptionOther,
		},
		Multi: true,
	},
	{
		Key:  KeyPurpose,
		Text: "구체적으로 어떤 작업에 AI 도구를 활용하고 싶으신가요? (여러 개 선택 가능)",
		Help: "구체적인 용도를 알려주시면 더 정확한 도구를 추천해 드립니다.",
		Options: []string{
			PurposeDocuments, PurposeMedia, PurposeData, PurposeProgram, PurposeMarketing,
			PurposeEducation, PurposeAutomation, PurposeSupport, PurposeResearch, OptionOther,
		},
		Multi: true,
	},
	{
		Key:     KeyDifficulty,
		Text:    "선호하는 AI 도구의 난이도는 어느 정도인가요?",
		Help:    "선호하는 난이도를 알려주시면 해당 수준에 맞는 도구를 우선적으로 추천해 드립니다.",
		Options: []string{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyFeatures},
	},
}

// Questions returns the questionnaire in page order.
func Questions() []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}

// Lookup returns the question stored under key.
func Lookup(key Key) (Question, bool) {
	for _, q := range Questions() {
		if q.Key == key {
			return q, true
		}
	}
	return Question{}, false
}

// IsBeginner reports whether level is one of the two lowest knowledge levels.
func IsBeginner(level string) bool {
	return level == KnowledgeNone || level == KnowledgeNameOnly
}

// IsExpert reports whether level is the highest knowledge level.
func IsExpert(level string) bool {
	return level == KnowledgeExpert
}
