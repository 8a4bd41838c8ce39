package domain

import "fmt"

// PromptTemplate is a named question that prefills the prediction prompt.
type PromptTemplate struct {
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

// DefaultTemplateKey selects the set used for pairs without their own.
const DefaultTemplateKey = "default"

var pairTemplates = map[string][]PromptTemplate{
	"USD/JPY": {
		{
			Title:  "今週のドル円動向を予測",
			Prompt: "今後1週間のUSD/JPY（ドル円）の為替相場について、アメリカのインフレ、FRBの金利政策、日本の経済情勢を踏まえて、予想されるトレンドを分析してください。",
		},
		{
			Title:  "円安要因を解説",
			Prompt: "2024年以降の円安傾向に関する主な要因を、アメリカと日本の政策・景気・金利差から解説してください。",
		},
	},
	"EUR/JPY": {
		{
			Title:  "ユーロ円の影響要因",
			Prompt: "EUR/JPY（ユーロ円）相場に影響を与える要因を、ECBの金融政策やユーロ圏の経済状況、日本の景気との比較から分析してください。",
		},
		{
			Title:  "今後の為替の見通し",
			Prompt: "今後1ヶ月のユーロ円相場について、為替変動に影響するイベントや指標を踏まえて、複数のシナリオを解説してください。",
		},
	},
	"GBP/JPY": {
		{
			Title:  "ポンド円のトレンド分析",
			Prompt: "GBP/JPY（ポンド円）の相場が最近どのようなトレンドを示しているかを、英中銀の政策や英国の経済情勢に基づいて解説してください。",
		},
	},
	"USD/EUR": {
		{
			Title:  "ドルユーロの今後",
			Prompt: "米ドルとユーロの相場（USD/EUR）について、FRBとECBのスタンスや欧米経済指標の違いから、今後の見通しを分析してください。",
		},
	},
	DefaultTemplateKey: {
		{
			Title:  "一般的な為替動向の分析",
			Prompt: "最近の為替相場の変動について、各国の金融政策や国際情勢がどう影響しているかをわかりやすく解説してください。",
		},
	},
}

// TemplatesFor returns the templates for p, or the default set.
func TemplatesFor(p Pair) []PromptTemplate {
	set, ok := pairTemplates[p.Label()]
	if !ok {
		set = pairTemplates[DefaultTemplateKey]
	}
	out := make([]PromptTemplate, len(set))
	copy(out, set)
	return out
}

// FindTemplate looks a template up by title within the set for p.
func FindTemplate(p Pair, title string) (PromptTemplate, bool) {
	for _, t := range TemplatesFor(p) {
		if t.Title == title {
			return t, true
		}
	}
	return PromptTemplate{}, false
}

// Guide is the usage note shown next to the prediction panel.
type Guide struct {
	Disclaimer string   `json:"disclaimer"`
	Focus      string   `json:"focus"`
	Hints      []string `json:"hints"`
}

func GuideFor(p Pair) Guide {
	return Guide{
		Disclaimer: "AIは未来の為替レートを断定しません。",
		Focus:      fmt.Sprintf("通貨ペア「%s」に関する背景分析・要因説明に強みがあります。", p.Label()),
		Hints: []string{
			"最近の金利差の影響は？",
			"中央銀行の政策スタンスはどう変化しているか？",
			"地政学リスクが為替に与える影響は？",
		},
	}
}
