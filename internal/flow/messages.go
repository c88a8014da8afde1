package flow

// User-facing copy. All flows reply in Persian; keep the strings in one
// place so wording changes never touch conversation logic.
const (
	msgWelcome = "به ربات نمایندگان ماز خوش امدید برای استفاده از ربات میتونید از دستورات بخش Menu استفاده کنید یا از دستور /help برای دریافت راهنمایی استفاده کنید \n\n/help راهنمایی "

	msgHelp = "برای استفاده از ربات میتونید از دستورات زیر استفاده کنید \n\n/start شروع ربات \n /list_codes لیست کد ها و مدیریت کد ها\n /add_code اضافه کردن کد \n /register ثبت نام\n /help راهنمایی"

	msgCancelled = "فرآیند لغو شد."

	msgNotRegistered = "شما هنوز ثبت نام نکرده اید لطفا برای ثبت نام از دستور /register استفاده کنید"

	msgInternal = "خطایی رخ داد. لطفاً دوباره تلاش کنید."

	// Registration.
	msgAlreadyRegistered = "شما قبلاً ثبت‌نام کردید ✅"
	msgAskName           = "👤 لطفاً نام و نام خانوادگی خود را به فارسی وارد کنید:\nانصراف : /cancel"
	msgBadName           = "❌ لطفاً نام و نام خانوادگی را به‌درستی و به زبان فارسی وارد کنید."
	msgAskPhone          = "📱 لطفاً شماره موبایل خود را وارد کنید (مثال: 09123456789):\nانصراف : /cancel"
	msgBadPhone          = "❌ شماره وارد شده معتبر نیست. لطفاً شماره را به صورت صحیح وارد کنید."
	msgOTPSent           = "✅ کد تایید پیامک شد. لطفاً کد را وارد کنید:"
	msgOTPSendFailed     = "خطا در ارسال پیامک. لطفاً بعداً دوباره تلاش کنید."
	msgBadOTP            = "❌ کد وارد شده صحیح نیست. لطفا دوباره تلاش کنید:"
	msgOTPExpired        = "کد تایید منقضی شده است. لطفاً فرآیند ثبت‌نام را با /register از ابتدا شروع کنید."
	msgRegistered        = "🎉 ثبت‌نام شما با موفقیت انجام شد!"

	// Referral code creation.
	msgAskCode          = "لطفا کد را وارد کنید ، کد میتواند تلفیقی از حروف و اعداد و یا فقط حرف و عدد باشد(حداقل 5 کاراکتر انگلیسی). \n\n/cancel لغو"
	msgCodeTooShort     = "کد باید حداقل 5 کاراکتر باشد"
	msgCodeBadShape     = "کد باید تلفیق و یا فقط حروف و اعداد انگلیسی باشد"
	msgCodeDuplicate    = "کد تکراری است لطفا کد دیگری وارد کنید"
	msgAskDiscount      = "لطفا مقدار تخفیف را وارد کنید(تا 1,500,000 تومان برای خرید نقدی و 1,000,000 تومان برای خرید قسطی)"
	msgDiscountNotNum   = "مقدار تخفیف باید عدد باشد"
	msgDiscountTooBig   = "مقدار تخفیف باید کمتر از 1,500,000 تومان باشد"
	msgAskProduct       = "لطفا محصول یا محصولاتی که میخواهید کد را به آن اختصاص دهید انتخاب کنید"
	msgBadProduct       = "محصول انتخاب شده معتبر نیست."
	msgAlmasDiscountCap = "محصولات الماس فقط برای تخفیف زیر 1,000,000 تومان میباشد"
	msgAskInstallment   = "لطفا قابلیت قسطی را انتخاب کنید\n نکته:قابلیت قسطی فقط برای محصولات الماس و تخفیف زیر 1,000,000 تومان میباشد\n\n/cancel لغو"
	msgBadInstallment   = "❌ فقط محصولات الماس با تخفیف زیر 1,000,000 تومان می‌توانند قسطی باشند."
	msgCodeAdded        = "کد با موفقیت اضافه شد لطفا برای اضافه کردن کد دیگری از دستور /add_code استفاده کنید"

	// Code management.
	msgCodeList      = "لیست کد های شما"
	msgCodeDeleted   = "کد با موفقیت حذف شد"
	msgDeleteRefused = "شما اجازه حذف این کد را ندارید"
	msgCodeGone      = "کد مورد نظر پیدا نشد"

	// Keyboard labels.
	labelInstallment = "قسطی"
	labelCash        = "نقدی"
	labelDelete      = "حذف"
	labelBack        = "بازگشت"
)
