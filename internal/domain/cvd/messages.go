package cvd

type messageKey struct {
	topic    Topic
	tier     Tier
	audience Audience
}

// Lifestyle findings use TierNormal for the healthy state and TierHigh for
// the habit that needs attention. BMI messages for TierHigh take the BMI as
// a format argument.
var messages = map[messageKey]string{
	// Prediction headline.
	{TopicPrediction, TierNormal, AudiencePatient}:   "Based on your inputs, you are not at risk of cardiovascular disease. Keep it up!",
	{TopicPrediction, TierHigh, AudiencePatient}:     "Based on your inputs, you are at high risk of cardiovascular disease, please seek professional medical help.",
	{TopicPrediction, TierNormal, AudiencePhysician}: "Based on patient's information, the patient is not at risk of cardiovascular disease.",
	{TopicPrediction, TierHigh, AudiencePhysician}:   "Based on patient's information, the patient is at high risk of cardiovascular disease. Medical assistance is advised.",

	{TopicBMI, TierNormal, AudiencePatient}:   "Your Body Mass Index is normal. Keep it up!",
	{TopicBMI, TierHigh, AudiencePatient}:     "Your Body Mass Index is %.1f. It's recommended to lose weight to lower your risk of cardiovascular disease.",
	{TopicBMI, TierNormal, AudiencePhysician}: "The patient's body mass index is normal.",
	{TopicBMI, TierHigh, AudiencePhysician}:   "The patient's body mass index is %.1f. Suggest weight loss measures to mitigate the risk of cardiovascular diseases.",

	{TopicDiastolic, TierNormal, AudiencePatient}:     "Your diastolic blood pressure is normal.",
	{TopicDiastolic, TierElevated, AudiencePatient}:   "Your diastolic blood pressure is at risk level. Consider monitoring it regularly. Recommended to adhere to a low-sodium diet and stay hydrated.",
	{TopicDiastolic, TierHigh, AudiencePatient}:       "Your diastolic blood pressure is very high. Adhere to a low-sodium diet and stay hydrated. Seek medical attention immediately.",
	{TopicDiastolic, TierNormal, AudiencePhysician}:   "Patient's diastolic blood pressure is normal.",
	{TopicDiastolic, TierElevated, AudiencePhysician}: "Patient's diastolic blood pressure is at risk level. Consider monitoring it regularly. Recommend the patient to adhere to a low-sodium diet and stay hydrated.",
	{TopicDiastolic, TierHigh, AudiencePhysician}:     "Patient's diastolic blood pressure is very high. Recommend the patient to adhere to a low-sodium diet and stay hydrated. Provide medical intervention.",

	{TopicSystolic, TierNormal, AudiencePatient}:     "Your systolic blood pressure is normal.",
	{TopicSystolic, TierElevated, AudiencePatient}:   "Your systolic blood pressure is at risk level. Consider monitoring it regularly. Recommended to adhere to a low-sodium diet and stay hydrated.",
	{TopicSystolic, TierHigh, AudiencePatient}:       "Your systolic blood pressure is very high. Adhere to a low-sodium diet and stay hydrated. Seek medical attention immediately.",
	{TopicSystolic, TierNormal, AudiencePhysician}:   "Patient's systolic blood pressure is normal.",
	{TopicSystolic, TierElevated, AudiencePhysician}: "Patient's systolic blood pressure is at risk level. Consider monitoring it regularly. Recommend the patient to adhere to a low-sodium diet and stay hydrated.",
	{TopicSystolic, TierHigh, AudiencePhysician}:     "Patient's systolic blood pressure is very high. Recommend the patient to adhere to a low-sodium diet and stay hydrated. Provide medical intervention.",

	{TopicCholesterol, TierNormal, AudiencePatient}:     "Your cholesterol level is normal.",
	{TopicCholesterol, TierElevated, AudiencePatient}:   "Your cholesterol level is above normal. Recommended to have a diet low in saturated fats and cholesterol. Recommended to exercise at least 3 times a week.",
	{TopicCholesterol, TierHigh, AudiencePatient}:       "Your cholesterol level is well above normal. Recommended to have a diet low in saturated fats and cholesterol and to exercise at least 3 times a week. Seek medical attention, medication may be needed to manage your cholesterol levels.",
	{TopicCholesterol, TierNormal, AudiencePhysician}:   "Patient's cholesterol level is normal.",
	{TopicCholesterol, TierElevated, AudiencePhysician}: "Patient's cholesterol level is above normal. Recommend diet low in saturated fats and cholesterol. Suggest regular exercise, at least 3 times a week.",
	{TopicCholesterol, TierHigh, AudiencePhysician}:     "Patient's cholesterol level is well above normal. Recommend diet low in saturated fats and cholesterol. Suggest regular exercise, at least 3 times a week. Prescribe medication to manage cholesterol levels.",

	{TopicGlucose, TierNormal, AudiencePatient}:     "Your glucose level is normal.",
	{TopicGlucose, TierElevated, AudiencePatient}:   "Your glucose level is above normal. Recommended to reduce intake of sugary and high-carbohydrate foods. Recommended to exercise at least 3 times a week.",
	{TopicGlucose, TierHigh, AudiencePatient}:       "Your glucose level is well above normal. Recommended to reduce intake of sugary and high-carbohydrate foods and to exercise at least 3 times a week. Seek medical attention, medication may be needed to manage your glucose levels.",
	{TopicGlucose, TierNormal, AudiencePhysician}:   "Patient's glucose level is normal.",
	{TopicGlucose, TierElevated, AudiencePhysician}: "Patient's glucose level is above normal. Recommend patient to reduce intake of sugary and high-carbohydrate foods. Suggest regular exercise, at least 3 times a week.",
	{TopicGlucose, TierHigh, AudiencePhysician}:     "Patient's glucose level is well above normal. Recommend patient to reduce intake of sugary and high-carbohydrate foods. Suggest regular exercise, at least 3 times a week. Provide medical intervention.",

	{TopicSmoking, TierNormal, AudiencePatient}:   "Opting not to smoke can lead to better health outcomes and a higher quality of life. Keep it up!",
	{TopicSmoking, TierHigh, AudiencePatient}:     "It is strongly advised you stop smoking to improve your overall health and lower your risk of cardiovascular disease.",
	{TopicSmoking, TierNormal, AudiencePhysician}: "Patient is not smoking.",
	{TopicSmoking, TierHigh, AudiencePhysician}:   "Recommend the patient discontinue smoking to enhance their overall health and diminish the risk of cardiovascular disease.",

	{TopicAlcohol, TierNormal, AudiencePatient}:   "Choosing not to consume alcohol can support your overall health and well-being, promoting clarity of mind and a healthier lifestyle. Keep it up!",
	{TopicAlcohol, TierHigh, AudiencePatient}:     "Consider reducing your alcohol intake to lower your health risks and your risk of cardiovascular disease.",
	{TopicAlcohol, TierNormal, AudiencePhysician}: "Patient is not consuming alcohol.",
	{TopicAlcohol, TierHigh, AudiencePhysician}:   "Advise the patient to decrease or discontinue alcohol consumption.",

	{TopicExercise, TierNormal, AudiencePatient}:   "Engaging in regular exercise can significantly enhance your physical fitness, mental well-being, and overall quality of life. Keep it up!",
	{TopicExercise, TierHigh, AudiencePatient}:     "Regular exercise is recommended. Try to exercise at least 3 times a week.",
	{TopicExercise, TierNormal, AudiencePhysician}: "Patient is exercising regularly.",
	{TopicExercise, TierHigh, AudiencePhysician}:   "Recommend the patient engage in regular exercise, a minimum of three times per week.",
}

func message(topic Topic, tier Tier, audience Audience) string {
	return messages[messageKey{topic: topic, tier: tier, audience: audience}]
}
