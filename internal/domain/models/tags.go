package models

import (
	"slices"
)

var tagVocabulary = []string{
	"desenvolvedor", "backend", "frontend", "fullstack", "mobile", "devops",
	"javascript", "python", "java", "react", "node.js", "angular", "vue.js",
	"php", "c#", "ruby", "go", "rust", "typescript", "sql", "nosql",
	"aws", "azure", "docker", "kubernetes", "git", "agile", "scrum",

	"estágio", "junior", "pleno", "senior", "especialista", "lead", "arquiteto",

	"medicina", "enfermagem", "fisioterapia", "psicologia", "odontologia",
	"engenharia", "civil", "mecânica", "elétrica", "química", "ambiental",
	"marketing", "vendas", "comercial", "atendimento", "suporte",
	"recursos humanos", "rh", "financeiro", "contabilidade", "auditoria",
	"design", "ux", "ui", "gráfico", "produto", "arquitetura",
	"educação", "professor", "coordenador", "diretor",
	"logística", "operações", "produção", "qualidade",
	"jurídico", "advocacia", "compliance", "contratos",

	"remoto", "presencial", "híbrido", "home office",
	"tempo integral", "meio período", "freelancer", "consultoria",
	"temporário", "efetivo", "terceirizado", "pj", "clt",
}

// Tags returns the tag vocabulary sorted bytewise.
func Tags() []string {
	tags := slices.Clone(tagVocabulary)
	slices.Sort(tags)
	return tags
}
