package bot

// User-facing texts. The bot speaks Arabic only; the content host and its
// audience are Arabic-speaking.
const (
	textRootPrompt     = "اختر قسمًا من الأقسام التالية:"
	textPickSub        = "اختر من «%s»:"
	textPickItem       = "«%s» — اختر من القائمة:"
	textBack           = "⬅️ رجوع"
	textMainMenu       = "🏠 القائمة الرئيسية"
	textSourceFooter   = "📎 المصدر: %s"
	textSectionMissing = "هذا القسم غير متوفر حاليًا."
	textNothingFound   = "لا يوجد محتوى في هذا القسم حاليًا."
	textUnavailable    = "تعذّر جلب المحتوى، الرجاء المحاولة لاحقًا."
	textRateLimited    = "مهلًا قليلًا ثم أعد المحاولة."

	descStart = "عرض أقسام المحتوى"
	descStats = "Process counters (owner only)"
)
