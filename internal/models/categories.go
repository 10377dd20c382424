package models

// Categories is the closed vocabulary of board categories. The same list
// drives the scrape loop, the extraction prompt and the UI filter, so it
// must stay in sync with the category parameter the board accepts.
var Categories = []string{
	".NET",
	"AI/ML",
	"Analyst",
	"Android",
	"Animator",
	"Architect",
	"Artist",
	"Big Data",
	"Blockchain",
	"C++",
	"C-level",
	"Copywriter",
	"Data Engineer",
	"Data Science",
	"DBA",
	"Design",
	"DevOps",
	"Embedded",
	"Engineering Manager",
	"Erlang",
	"ERP/CRM",
	"Finance",
	"Flutter",
	"Front End",
	"Golang",
	"Hardware",
	"HR",
	"iOS/macOS",
	"Java",
	"Legal",
	"Marketing",
	"Node.js",
	"Office Manager",
	"Other",
	"PHP",
	"Product Manager",
	"Project Manager",
	"Python",
	"QA",
	"React Native",
	"Ruby",
	"Rust",
	"Sales",
	"Salesforce",
	"SAP",
	"Scala",
	"Scrum Master",
	"Security",
	"SEO",
	"Support",
	"SysAdmin",
	"Technical Writer",
	"Unity",
	"Unreal Engine",
}
