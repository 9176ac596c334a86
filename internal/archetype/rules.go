package archetype

import "github.com/spigell/ai-tool-advisor/internal/survey"

// Weights are keyed by the canonical option strings of the questionnaire.
// Options missing here, including survey.OptionOther, add no points.

var knowledgeRules = map[string]map[Archetype]int{
	survey.KnowledgeNone:      {BeginnerExplorer: 10},
	survey.KnowledgeNameOnly:  {BeginnerExplorer: 10},
	survey.KnowledgeBasics:    {Explorer: 5, KnowledgeCollector: 3},
	survey.KnowledgePractical: {EfficiencySeeker: 5, ContentCreator: 3, BusinessStrategist: 3},
	survey.KnowledgeExpert:    {CodeWizard: 8, Explorer: 5},
}

var jobRules = map[string]map[Archetype]int{
	survey.JobStudent:   {Explorer: 3, KnowledgeCollector: 3},
	survey.JobDeveloper: {CodeWizard: 8, EfficiencySeeker: 3},
	survey.JobEducator:  {KnowledgeCollector: 7, ContentCreator: 3},
	survey.JobDesigner:  {DigitalArtist: 10, ContentCreator: 5},
	survey.JobMarketer:  {BusinessStrategist: 7, ContentCreator: 5},
	survey.JobOffice:    {EfficiencySeeker: 8, KnowledgeCollector: 3},
	survey.JobManager:   {BusinessStrategist: 9, EfficiencySeeker: 6},
	survey.JobFounder:   {Explorer: 5, BusinessStrategist: 5, EfficiencySeeker: 4},
}

var interestRules = map[string]map[Archetype]int{
	survey.InterestText:        {ContentCreator: 4},
	survey.InterestImage:       {DigitalArtist: 5},
	survey.InterestVideoAudio:  {DigitalArtist: 4, ContentCreator: 3},
	survey.InterestData:        {BusinessStrategist: 4, KnowledgeCollector: 3},
	survey.InterestAutomation:  {EfficiencySeeker: 6},
	survey.InterestSearch:      {KnowledgeCollector: 6},
	survey.InterestCode:        {CodeWizard: 7},
	survey.InterestTranslation: {KnowledgeCollector: 3, ContentCreator: 2},
}

var purposeRules = map[string]map[Archetype]int{
	survey.PurposeDocuments:  {ContentCreator: 4, EfficiencySeeker: 2},
	survey.PurposeMedia:      {DigitalArtist: 6},
	survey.PurposeData:       {BusinessStrategist: 4, KnowledgeCollector: 3},
	survey.PurposeProgram:    {CodeWizard: 6},
	survey.PurposeMarketing:  {BusinessStrategist: 5, ContentCreator: 3},
	survey.PurposeEducation:  {KnowledgeCollector: 5},
	survey.PurposeAutomation: {EfficiencySeeker: 6},
	survey.PurposeSupport:    {BusinessStrategist: 3},
	survey.PurposeResearch:   {KnowledgeCollector: 6, ContentCreator: 2},
}
