package scoring

import (
	"github.com/spigell/ai-tool-advisor/internal/catalog"
	"github.com/spigell/ai-tool-advisor/internal/survey"
)

// Catalog categories referenced by the tables.
const (
	CategoryText         = "Text & Writing"
	CategoryChatbots     = "Chatbots & Assistants"
	CategoryImage        = "Image Generation"
	CategoryDesign       = "Design"
	CategoryVideoAudio   = "Video & Audio"
	CategoryData         = "Data Analysis"
	CategoryProductivity = "Productivity & Automation"
	CategoryResearch     = "Research"
	CategoryCoding       = "App Builders & Coding"
	CategoryTranslation  = "Translation & Language"
	CategoryEducation    = "Education"
	CategoryMarketing    = "Marketing"
	CategorySupport      = "Customer Support"
	CategoryBusiness     = "Business"
)

// Weights of the criteria.
const (
	WeightPreferredDifficulty     = 5
	WeightPreferredDifficultyNull = 4
	WeightKnowledgeBias           = 3
	WeightInterest                = 4
	WeightPurpose                 = 4
	WeightJob                     = 5
	WeightDescription             = 1

	// descriptionMinLength is exclusive.
	descriptionMinLength = 10
)

// Table maps an answer option to catalog categories. Missing options map to nothing.
type Table map[string][]string

// Categories returns the categories of option, or nil.
func (t Table) Categories(option string) []string {
	return t[option]
}

var InterestTable = Table{
	survey.InterestText:        {CategoryText, CategoryChatbots},
	survey.InterestImage:       {CategoryImage, CategoryDesign},
	survey.InterestVideoAudio:  {CategoryVideoAudio},
	survey.InterestData:        {CategoryData},
	survey.InterestAutomation:  {CategoryProductivity},
	survey.InterestSearch:      {CategoryResearch, CategoryChatbots},
	survey.InterestCode:        {CategoryCoding},
	survey.InterestTranslation: {CategoryTranslation, CategoryEducation},
}

var PurposeTable = Table{
	survey.PurposeDocuments:  {CategoryText, CategoryProductivity},
	survey.PurposeMedia:      {CategoryImage, CategoryVideoAudio, CategoryDesign},
	survey.PurposeData:       {CategoryData},
	survey.PurposeProgram:    {CategoryCoding},
	survey.PurposeMarketing:  {CategoryMarketing, CategoryText},
	survey.PurposeEducation:  {CategoryEducation, CategoryTranslation},
	survey.PurposeAutomation: {CategoryProductivity},
	survey.PurposeSupport:    {CategorySupport, CategoryChatbots},
	survey.PurposeResearch:   {CategoryResearch, CategoryText},
}

var JobTable = Table{
	survey.JobStudent:    {CategoryEducation, CategoryResearch},
	survey.JobDeveloper:  {CategoryCoding},
	survey.JobEducator:   {CategoryResearch, CategoryEducation},
	survey.JobDesigner:   {CategoryImage, CategoryDesign, CategoryVideoAudio},
	survey.JobMarketer:   {CategoryMarketing, CategoryText},
	survey.JobOffice:     {CategoryProductivity, CategoryText},
	survey.JobManager:    {CategoryBusiness, CategoryData},
	survey.JobFounder:    {CategoryBusiness, CategoryMarketing, CategoryProductivity},
	survey.JobMedical:    {CategoryResearch},
	survey.JobLegalFinan: {CategoryResearch, CategoryData},
}

// DifficultyPreferences maps the preferred difficulty options. The
// feature-first option is absent on purpose and yields no preference.
var DifficultyPreferences = map[string]catalog.Difficulty{
	survey.DifficultyEasy:   catalog.DifficultyLow,
	survey.DifficultyMedium: catalog.DifficultyMedium,
	survey.DifficultyHard:   catalog.DifficultyHard,
}

// PreferredDifficulty returns the difficulty the user asked for. Plain values
// such as "low" are accepted too, for API clients.
func PreferredDifficulty(answer string) catalog.Difficulty {
	if d, ok := DifficultyPreferences[answer]; ok {
		return d
	}
	return catalog.ParseDifficulty(answer)
}
