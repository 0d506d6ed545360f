package bot

// Fixed reply texts. The three failure classes (not authorized, not
// understood, system error) must stay textually distinct from each other and
// from any success reply.
const (
	replyNotAuthorized = "⛔️ شما اجازه استفاده از این ربات را ندارید."

	replyUnrecognized = "🤔 متوجه منظورت نشدم. می‌تونی مثلا بنویسی:\n" +
		"• «۵۰ هزار تومن ناهار دادم»\n" +
		"• «موجودی کارت ملتم شد ۲ میلیون»\n" +
		"• «این ماه چقدر خرج کردم؟»\n" +
		"• «ساعت ۲۱ یادم بنداز قسط رو بدم»"

	replySystemError = "⚠️ مشکلی در پردازش پیامت پیش آمد. چند لحظه دیگر دوباره امتحان کن."

	replyNoAccounts = "هنوز هیچ حسابی ثبت نکرده‌ای. برای شروع بنویس: «موجودی کارت ملتم شد ۲ میلیون»"

	replyNoTransactions = "📭 در این بازه تراکنشی ثبت نشده است."

	noDataPlaceholder = "هنوز داده‌ای ثبت نشده است."
)
