// messages/messages.go
package messages

// Catalog is an injected translation lookup. Actions receive one instead of
// reading the locale from process state, so they stay pure with respect to
// the environment.
type Catalog struct {
	locale string
	table  map[string]string
}

func (c Catalog) Locale() string { return c.locale }

// Get returns the message for key, falling back to the key itself so a
// missing entry degrades to something debuggable instead of an empty string.
func (c Catalog) Get(key string) string {
	if msg, ok := c.table[key]; ok {
		return msg
	}
	return key
}

// ForLocale returns the catalog for the given locale, defaulting to English.
func ForLocale(locale string) Catalog {
	if table, ok := tables[locale]; ok {
		return Catalog{locale: locale, table: table}
	}
	return Catalog{locale: "en", table: tables["en"]}
}

var tables = map[string]map[string]string{
	"en": {
		"emailRequired":        "Email is required",
		"emailInvalid":         "Invalid email address",
		"emailExists":          "An account with this email already exists",
		"emailNotFound":        "No account associated with this email",
		"nameRequired":         "Name is required",
		"passwordRequired":     "Password is required",
		"passwordMinLength":    "Password must be at least 8 characters",
		"passwordWeak":         "Password must contain upper case, lower case and a digit",
		"passwordMismatch":     "Passwords do not match",
		"otpRequired":          "Verification code is required",
		"otpInvalid":           "Invalid verification code",
		"otpExpired":           "Verification code has expired. Please request a new one",
		"tokenInvalid":         "Invalid or expired reset token",
		"invalidCredentials":   "Invalid email or password",
		"loginFailed":          "Login failed",
		"loginSuccess":         "Logged in successfully",
		"registerFailed":       "Registration failed",
		"registerSuccess":      "Account created successfully",
		"logoutSuccess":        "Logged out successfully",
		"passwordResetSent":    "Password reset instructions sent",
		"passwordResetSuccess": "Password reset successfully",
		"otpSent":              "Verification code sent",
		"otpVerified":          "Verification code confirmed",
		"serverError":          "Something went wrong. Please try again",
	},
	"ar": {
		"emailRequired":        "البريد الإلكتروني مطلوب",
		"emailInvalid":         "البريد الإلكتروني غير صالح",
		"emailExists":          "يوجد حساب مسجل بهذا البريد الإلكتروني",
		"emailNotFound":        "لا يوجد حساب مرتبط بهذا البريد الإلكتروني",
		"nameRequired":         "الاسم مطلوب",
		"passwordRequired":     "كلمة المرور مطلوبة",
		"passwordMinLength":    "يجب أن تتكون كلمة المرور من 8 أحرف على الأقل",
		"passwordWeak":         "يجب أن تحتوي كلمة المرور على حرف كبير وحرف صغير ورقم",
		"passwordMismatch":     "كلمتا المرور غير متطابقتين",
		"otpRequired":          "رمز التحقق مطلوب",
		"otpInvalid":           "رمز التحقق غير صحيح",
		"otpExpired":           "انتهت صلاحية رمز التحقق. يرجى طلب رمز جديد",
		"tokenInvalid":         "رمز إعادة التعيين غير صالح أو منتهي الصلاحية",
		"invalidCredentials":   "البريد الإلكتروني أو كلمة المرور غير صحيحة",
		"loginFailed":          "فشل تسجيل الدخول",
		"loginSuccess":         "تم تسجيل الدخول بنجاح",
		"registerFailed":       "فشل إنشاء الحساب",
		"registerSuccess":      "تم إنشاء الحساب بنجاح",
		"logoutSuccess":        "تم تسجيل الخروج بنجاح",
		"passwordResetSent":    "تم إرسال تعليمات إعادة تعيين كلمة المرور",
		"passwordResetSuccess": "تمت إعادة تعيين كلمة المرور بنجاح",
		"otpSent":              "تم إرسال رمز التحقق",
		"otpVerified":          "تم تأكيد رمز التحقق",
		"serverError":          "حدث خطأ ما. يرجى المحاولة مرة أخرى",
	},
}
