package lexicon

// synonymTable maps a head term to related terms. The relation is stored
// asymmetrically; lookups close it in both directions.
var synonymTable = map[string][]string{
	"صبر":   {"تحمل", "جلد", "احتمال", "صابر", "صبور", "مصابرة"},
	"علم":   {"معرفة", "فهم", "إدراك", "تعلم", "دراية"},
	"حكمة":  {"حكيم", "رشد", "بصيرة", "موعظة"},
	"حب":    {"محبة", "عشق", "ود", "مودة", "هوى", "غرام"},
	"سعادة": {"فرح", "سرور", "بهجة", "هناء", "غبطة"},
	"حزن":   {"غم", "هم", "كرب", "أسى", "كآبة"},
	"خوف":   {"خشية", "رهبة", "فزع", "وجل", "هلع"},
	"أمل":   {"رجاء", "تفاؤل", "طموح"},
	"نور":   {"ضياء", "ضوء", "إشراق", "سراج"},
	"صدق":   {"أمانة", "إخلاص", "وفاء"},
	"كذب":   {"افتراء", "بهتان", "زور"},
	"فرج":   {"يسر", "انفراج", "مخرج", "فرح"},
	"عسر":   {"ضيق", "شدة", "كرب", "بلاء"},
	"قول":   {"كلام", "حديث", "مقال", "لفظ"},
	"عمل":   {"فعل", "سعي", "جهد", "كد"},
	"نجاح":  {"فوز", "ظفر", "فلاح", "توفيق"},
	"قلب":   {"فؤاد", "صدر", "وجدان"},
	"دنيا":  {"حياة", "عيش"},
	"موت":   {"وفاة", "منية", "أجل", "رحيل"},
	"صديق":  {"رفيق", "خليل", "صاحب", "خل"},
	"كرم":   {"جود", "سخاء", "عطاء", "بذل"},
	"عقل":   {"لب", "فكر", "ذهن", "حجى"},
	"رحمة":  {"رأفة", "شفقة", "حنان", "لطف"},
	"شكر":   {"حمد", "ثناء", "امتنان"},
	"ذكر":   {"تسبيح", "دعاء", "تهليل"},
	"سلام":  {"أمن", "طمأنينة", "سكينة"},
	"وقت":   {"زمن", "عمر", "دهر", "أيام"},
	"طريق":  {"سبيل", "درب", "منهج", "صراط"},
	"جمال":  {"حسن", "بهاء", "روعة"},
	"قوة":   {"عزم", "شجاعة", "بأس", "همة"},
	"توبة":  {"استغفار", "رجوع", "إنابة"},
	"تواضع": {"خشوع", "لين"},
	"غضب":   {"سخط", "حنق", "غيظ"},
	"جهل":   {"سفه", "غفلة", "حمق"},
}

type rootEntry struct {
	root  string
	forms []string
}

// rootTable keeps insertion order; FindRoots returns roots in this order.
var rootTable = []rootEntry{
	{"صبر", []string{"صبر", "صابر", "صبور", "اصبر", "يصبر", "تصبر", "مصابرة", "صابرين"}},
	{"علم", []string{"علم", "عالم", "معلم", "تعلم", "متعلم", "علوم", "يعلم", "معلوم", "علماء", "تعليم"}},
	{"كتب", []string{"كتب", "كاتب", "مكتوب", "كتاب", "مكتبة", "يكتب", "كتابة"}},
	{"حمد", []string{"حمد", "محمد", "حامد", "محمود", "أحمد", "يحمد"}},
	{"شكر", []string{"شكر", "شاكر", "شكور", "مشكور", "يشكر", "شاكرين"}},
	{"قول", []string{"قول", "قال", "قائل", "مقال", "يقول", "أقوال", "مقولة"}},
	{"عمل", []string{"عمل", "عامل", "معمول", "أعمال", "يعمل", "عاملين"}},
	{"حبب", []string{"حب", "محبة", "حبيب", "محبوب", "أحب", "يحب", "أحباب"}},
	{"رحم", []string{"رحمة", "رحيم", "رحمن", "راحم", "مرحوم", "يرحم", "تراحم"}},
	{"فرج", []string{"فرج", "انفراج", "فرجة", "يفرج", "تفريج"}},
	{"نجح", []string{"نجاح", "ناجح", "أنجح", "ينجح"}},
	{"ظفر", []string{"ظفر", "ظافر", "مظفر", "يظفر"}},
	{"صدق", []string{"صدق", "صادق", "صديق", "تصديق", "صدقة", "يصدق", "صادقين"}},
	{"سلم", []string{"سلام", "سلم", "مسلم", "إسلام", "سالم", "سليم", "تسليم"}},
	{"ذكر", []string{"ذكر", "ذاكر", "مذكور", "تذكر", "تذكرة", "ذكرى", "ذاكرين"}},
	{"حكم", []string{"حكمة", "حكيم", "حكم", "حاكم", "محكمة", "أحكام", "حكماء"}},
	{"قلب", []string{"قلب", "قلوب", "تقلب", "منقلب"}},
	{"عقل", []string{"عقل", "عاقل", "معقول", "عقول", "يعقل", "عقلاء"}},
	{"نور", []string{"نور", "منير", "أنوار", "تنوير", "نوراني"}},
	{"أمل", []string{"أمل", "آمال", "تأمل", "مأمول"}},
	{"خوف", []string{"خوف", "خائف", "مخيف", "يخاف", "مخافة"}},
	{"حزن", []string{"حزن", "حزين", "أحزان", "محزون", "يحزن"}},
	{"فرح", []string{"فرح", "فرحان", "أفراح", "مفرح", "يفرح"}},
	{"صحب", []string{"صاحب", "أصحاب", "صحبة", "مصاحبة"}},
	{"كرم", []string{"كرم", "كريم", "كرماء", "إكرام", "مكرم"}},
	{"غضب", []string{"غضب", "غاضب", "غضبان", "مغضوب", "يغضب"}},
	{"جهل", []string{"جهل", "جاهل", "جهلاء", "مجهول", "يجهل"}},
	{"دعو", []string{"دعاء", "داعي", "دعوة", "يدعو", "ادعوا"}},
}
