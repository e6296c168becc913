package services

import (
	"encoding/json"
)

// CandidateBrief is what the model gets to know about a candidate.
type CandidateBrief struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	ProfileTitle string   `json:"profileTitle"`
	Location     string   `json:"location"`
	Skills       []string `json:"skills"`
	Experience   []string `json:"experience"`
	Stage        string   `json:"stage,omitempty"`
}

func resumeAnalysisRequest(resumeText, requirements string) string {
	return "Você é uma IA recrutadora especialista em RH. Analise o currículo abaixo e compare com os requisitos da vaga.\n\n" +
		"Currículo:\n" + resumeText + "\n\n" +
		"Requisitos da vaga:\n" + requirements + "\n\n" +
		"Resuma o candidato, diga se ele é adequado para a vaga, aponte pontos fortes e fracos, " +
		"dê uma nota de compatibilidade de 0 a 100 e sugira melhorias no currículo.\n" +
		"Responda somente com JSON no formato:\n" +
		`{"summary": "...", "compatibility": 0, "strengths": ["..."], "weaknesses": ["..."], "suggestions": ["..."], "score": 0}`
}

func reportRequest(data any) string {
	return "Você é um especialista em análise de dados de RH. Gere um relatório executivo com base nos dados:\n\n" +
		indentJSON(data) + "\n\n" +
		"Responda somente com JSON no formato:\n" +
		`{"summary": "...", "insights": ["..."], "trends": ["..."], "recommendations": ["..."], "next_steps": ["..."]}`
}

func recommendCandidatesRequest(jobDescription string, candidates []CandidateBrief) string {
	return "Você é um especialista em matching de candidatos. Ordene os candidatos abaixo por compatibilidade com a vaga.\n\n" +
		"Descrição da vaga:\n" + jobDescription + "\n\n" +
		"Candidatos:\n" + indentJSON(candidates) + "\n\n" +
		"Responda somente com um array JSON no formato:\n" +
		`[{"candidateId": 0, "matchScore": 0, "justification": "..."}]`
}

func trendsRequest(candidates []CandidateBrief) string {
	return "Analise os dados dos candidatos e identifique tendências de habilidades, níveis de experiência, " +
		"localizações e insights para recrutamento.\n\n" +
		"Dados dos candidatos:\n" + indentJSON(candidates) + "\n\n" +
		"Responda somente com JSON no formato:\n" +
		`{"skills_trends": ["..."], "experience_levels": {"junior": 0, "pleno": 0, "senior": 0}, "locations": {"cidade": 0}, "insights": ["..."]}`
}

func indentJSON(data any) string {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(encoded)
}
