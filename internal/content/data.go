package content

var timelineEvents = []TimelineEvent{
	{
		Year:        "1820",
		Title:       "古蹟建造",
		Description: "這座古蹟始建於清朝道光年間，最初作為地方官員的辦公場所，見證了當時的政治與社會變遷。建築風格融合了傳統中式建築與當時的時代特色。",
		Icon:        "mdi-home",
		Color:       "primary",
		Image:       "/img/landing-view.webp",
	},
	{
		Year:        "1895",
		Title:       "日治時期",
		Description: "進入日治時期後，建築物被重新規劃使用，成為重要的行政中心。在此期間，建築物經歷了部分改建，但仍保持原有的基本結構。",
		Icon:        "mdi-flag",
		Color:       "success",
	},
	{
		Year:        "1945",
		Title:       "戰後重建",
		Description: "第二次世界大戰結束後，建築物在戰火中受損，經過精心修復後重新開放。這個時期標誌著古蹟保護意識的萌芽。",
		Icon:        "mdi-hammer-wrench",
		Color:       "warning",
	},
	{
		Year:        "1985",
		Title:       "列為古蹟",
		Description: "正式被政府列為歷史古蹟，開始受到法律保護。這標誌著古蹟保護工作進入新的階段，也為後續的修復與維護奠定了基礎。",
		Icon:        "mdi-shield-star",
		Color:       "info",
	},
	{
		Year:        "2000",
		Title:       "全面修復",
		Description: "進行了全面的修復工程，採用傳統工法與現代技術相結合的方式，確保古蹟的結構安全與歷史風貌的完整性。",
		Icon:        "mdi-tools",
		Color:       "error",
	},
}

var historicalSignificance = []Significance{
	{
		Title:       "建築藝術",
		Description: "展現了清朝中後期的建築特色，融合了傳統工藝與時代美學，是研究當時建築技術的重要實例。",
		Icon:        "mdi-palette",
		Color:       "primary",
	},
	{
		Title:       "歷史見證",
		Description: "見證了從清朝到現代的重要歷史變遷，承載了豐富的歷史記憶與文化內涵。",
		Icon:        "mdi-book-open",
		Color:       "success",
	},
	{
		Title:       "文化傳承",
		Description: "作為重要的文化載體，傳承了當地的歷史文化，是後代了解過去的重要窗口。",
		Icon:        "mdi-account-group",
		Color:       "info",
	},
}

var boardMembers = []BoardMember{
	{
		Name:        "張文華",
		Title:       "理事長",
		Role:        "理事長",
		Photo:       "/img/landing-view.webp",
		Description: "致力於古蹟保護與文化傳承，擁有豐富的歷史建築修復經驗。",
		Education:   "國立台灣大學建築與城鄉研究所博士",
		Expertise:   []string{"古蹟修復", "建築史", "文化政策"},
		Experience: []string{
			"文化部古蹟審議委員",
			"台灣古蹟保護協會理事長",
			"國立故宮博物院建築顧問",
		},
		Email: "zhang@monument.gov.tw",
	},
	{
		Name:        "李美玲",
		Title:       "副理事長",
		Role:        "副理事長",
		Photo:       "/img/landing-view.webp",
		Description: "專精於文化資產管理與教育推廣，推動古蹟活化再利用。",
		Education:   "國立政治大學歷史學系碩士",
		Expertise:   []string{"文化資產", "教育推廣", "博物館學"},
		Experience: []string{
			"台北市文化局文化資產科科長",
			"國立歷史博物館研究員",
			"台灣博物館學會常務理事",
		},
		Email: "li@monument.gov.tw",
	},
	{
		Name:        "陳志明",
		Title:       "常務理事",
		Role:        "常務理事",
		Photo:       "/img/landing-view.webp",
		Description: "建築工程專家，專精於古蹟結構安全評估與修復技術。",
		Education:   "國立成功大學建築學系學士",
		Expertise:   []string{"結構工程", "古蹟修復", "工程管理"},
		Experience: []string{
			"中華民國建築師公會理事",
			"古蹟修復工程顧問",
			"營建署古蹟修復審查委員",
		},
		Email: "chen@monument.gov.tw",
	},
}

var features = []Feature{
	{
		Title:       "歷史沿革",
		Description: "探索古蹟的建造背景、歷史變遷與文化意義",
		Icon:        "mdi-history",
		Color:       "primary",
		To:          "/history",
	},
	{
		Title:       "組織架構",
		Description: "了解古蹟管理組織的結構與運作方式",
		Icon:        "mdi-account-group",
		Color:       "success",
		To:          "/organization",
	},
	{
		Title:       "委員會務",
		Description: "查看理事會成員與相關公務資訊",
		Icon:        "mdi-account-tie",
		Color:       "info",
		To:          "/directors",
	},
	{
		Title:       "公務資訊",
		Description: "瀏覽古蹟相關的公務公告與重要資訊",
		Icon:        "mdi-file-document",
		Color:       "warning",
		To:          "/public-affairs",
	},
	{
		Title:       "最新公告",
		Description: "掌握古蹟管理處的最新公告與消息",
		Icon:        "mdi-bullhorn",
		Color:       "error",
		To:          "/announcements",
	},
}

var formDocuments = []FormDocument{
	{
		Title:       "古蹟參觀申請表",
		Description: "申請參觀古蹟所需填寫的表單，包含個人資料與參觀時間",
		Date:        "2024-01-15",
		Type:        "PDF",
		Icon:        "mdi-file-document",
		Color:       "primary",
		Category:    "申請表單",
		URL:         "#",
	},
	{
		Title:       "古蹟修復工程申請表",
		Description: "申請進行古蹟修復工程所需填寫的申請表單",
		Date:        "2024-01-12",
		Type:        "DOC",
		Icon:        "mdi-hammer-wrench",
		Color:       "warning",
		Category:    "工程申請",
		URL:         "#",
	},
	{
		Title:       "古蹟使用許可申請表",
		Description: "申請使用古蹟場地進行活動所需填寫的表單",
		Date:        "2024-01-10",
		Type:        "PDF",
		Icon:        "mdi-calendar-check",
		Color:       "success",
		Category:    "申請表單",
		URL:         "#",
	},
	{
		Title:       "古蹟研究調查申請表",
		Description: "申請進行古蹟相關研究調查所需填寫的表單",
		Date:        "2024-01-08",
		Type:        "DOC",
		Icon:        "mdi-book-search",
		Color:       "info",
		Category:    "研究申請",
		URL:         "#",
	},
	{
		Title:       "古蹟維護志工報名表",
		Description: "報名成為古蹟維護志工所需填寫的表單",
		Date:        "2024-01-05",
		Type:        "PDF",
		Icon:        "mdi-account-group",
		Color:       "purple",
		Category:    "志工報名",
		URL:         "#",
	},
	{
		Title:       "古蹟導覽服務預約表",
		Description: "預約古蹟導覽服務所需填寫的表單",
		Date:        "2024-01-03",
		Type:        "PDF",
		Icon:        "mdi-school",
		Color:       "success",
		Category:    "服務預約",
		URL:         "#",
	},
	{
		Title:       "古蹟攝影申請表",
		Description: "申請在古蹟內進行攝影所需填寫的表單",
		Date:        "2024-01-01",
		Type:        "DOC",
		Icon:        "mdi-camera",
		Color:       "primary",
		Category:    "申請表單",
		URL:         "#",
	},
	{
		Title:       "古蹟文物借展申請表",
		Description: "申請借展古蹟文物所需填寫的表單",
		Date:        "2023-12-28",
		Type:        "PDF",
		Icon:        "mdi-package-variant",
		Color:       "warning",
		Category:    "文物借展",
		URL:         "#",
	},
}

var contactInfo = []ContactInfo{
	{
		Title:       "總機電話",
		Description: "古蹟管理處總機",
		Value:       "02-1234-5678",
		Icon:        "mdi-phone",
		Color:       "primary",
		Action:      "tel:02-1234-5678",
		ButtonText:  "撥打電話",
	},
	{
		Title:       "電子信箱",
		Description: "公務信箱",
		Value:       "info@monument.gov.tw",
		Icon:        "mdi-email",
		Color:       "success",
		Action:      "mailto:info@monument.gov.tw",
		ButtonText:  "發送郵件",
	},
	{
		Title:       "地址",
		Description: "古蹟管理處地址",
		Value:       "台北市中正區重慶南路一段122號",
		Icon:        "mdi-map-marker",
		Color:       "info",
		Action:      "https://maps.google.com",
		ButtonText:  "查看地圖",
	},
}
